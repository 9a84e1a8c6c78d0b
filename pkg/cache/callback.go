package cache

import (
	"context"
	"time"

	"github.com/pixperk/cohere/pkg/types"
)

// OnCallback handles a release request from the store: it waits for any local
// transaction that owns the object, flushes every batch that touched it, drops
// the local mode to target and acknowledges with a downgrade
func (c *Cache) OnCallback(ctx context.Context, oid types.ObjectID, target types.AccessMode, epoch uint64) error {
	c.logger.Debug("callback", "object", oid, "target", target, "epoch", epoch)
	return c.demote(ctx, oid, target, epoch)
}

func (c *Cache) demote(ctx context.Context, oid types.ObjectID, target types.AccessMode, epoch uint64) error {
	c.mu.Lock()

	var e *entry
	for {
		e = c.entries[oid]
		if e == nil {
			break
		}
		//the request refers to a grant whose reply has not reached us yet
		if e.acquiring != nil && epoch > e.epoch {
			if err := c.waitLocked(ctx, e.acquiring); err != nil {
				c.mu.Unlock()
				return err
			}
			continue
		}
		if e.mode <= target {
			break
		}
		if e.owner != nil {
			if err := c.waitLocked(ctx, e.ownerDone); err != nil {
				c.mu.Unlock()
				return err
			}
			continue
		}
		if e.demoting != nil {
			if err := c.waitLocked(ctx, e.demoting); err != nil {
				c.mu.Unlock()
				return err
			}
			continue
		}
		break
	}

	if e == nil || e.mode <= target {
		//nothing to give up here, acknowledge so the store stops waiting on us
		ack := epoch
		if e != nil && e.epoch > ack {
			ack = e.epoch
		}
		c.mu.Unlock()
		return c.remote.Downgrade(ctx, oid, target, ack)
	}

	done := make(chan struct{})
	e.demoting = done
	seq := e.lastSeq
	c.mu.Unlock()

	finish := func() {
		c.mu.Lock()
		e.demoting = nil
		close(done)
		c.gcLocked(oid, e)
		c.mu.Unlock()
	}

	//another node must never see bytes older than our last commit
	if seq > 0 {
		if err := c.queue.WaitApplied(ctx, seq); err != nil {
			finish()
			return err
		}
	}

	c.mu.Lock()
	from := e.mode
	e.mode = target
	if target == types.ModeNone {
		e.data = nil
		e.pending = false
		e.deleted = false
	}
	ack := e.epoch
	if epoch > ack {
		ack = epoch
	}
	c.mu.Unlock()

	err := c.remote.Downgrade(ctx, oid, target, ack)
	finish()
	if err != nil {
		//the local mode is already gone; the store revokes it on timeout
		c.logger.Warn("downgrade not delivered", "object", oid, "target", target, "error", err)
		return err
	}
	c.logger.Debug("downgraded", "object", oid, "from", from, "to", target, "epoch", ack)
	return nil
}

// removes tombstones once the store has applied the deletes
func (c *Cache) forgetDeleted(seq uint64, deleted map[types.ObjectID]struct{}) {
	ids := make([]types.ObjectID, 0, len(deleted))
	for oid := range deleted {
		ids = append(ids, oid)
	}
	c.sched.AddTask(func(ctx context.Context) {
		if err := c.queue.WaitApplied(ctx, seq); err != nil {
			return
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		for _, oid := range ids {
			if e, exists := c.entries[oid]; exists && e.deleted && e.lastSeq == seq {
				//the store dropped our mode together with the object
				e.mode = types.ModeNone
				c.gcLocked(oid, e)
			}
		}
	})
}

// hands back what the retention policy does not want to keep
func (c *Cache) applyPolicy(touched map[types.ObjectID]struct{}) {
	for oid := range touched {
		c.mu.Lock()
		e, exists := c.entries[oid]
		if !exists || e.mode == types.ModeNone || e.deleted {
			c.mu.Unlock()
			continue
		}
		target := c.policy.Retain(oid, e.mode)
		keep := target >= e.mode
		c.mu.Unlock()
		if keep {
			continue
		}

		c.sched.AddTask(func(ctx context.Context) {
			ctx, cancel := context.WithTimeout(ctx, releaseTimeout)
			defer cancel()
			if err := c.demote(ctx, oid, target, 0); err != nil {
				c.logger.Warn("release after commit failed", "object", oid, "target", target, "error", err)
			}
		})
	}
}

// bound for a policy release, including the flush it waits for
const releaseTimeout = 30 * time.Second
