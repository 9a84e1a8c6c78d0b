// Package cache is the node side of the coherence protocol: cached object
// copies with the access mode the node holds on each, local transactions over
// them, and the handler for release requests from the store.
package cache

import (
	"context"
	"errors"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/pixperk/cohere/pkg/scheduler"
	"github.com/pixperk/cohere/pkg/types"
)

// what the store granted
// Data is nil while the object's create is pending
type Grant struct {
	Mode  types.AccessMode
	Epoch uint64
	Data  []byte
}

// the store as seen from one node
type Remote interface {
	Acquire(ctx context.Context, oid types.ObjectID, mode types.AccessMode) (Grant, error)
	Downgrade(ctx context.Context, oid types.ObjectID, target types.AccessMode, epoch uint64) error
	// allocates an object and grants the node WRITE on it
	Create(ctx context.Context, name string) (types.ObjectID, Grant, error)
	Lookup(ctx context.Context, name string) (types.ObjectID, error)
}

// the node's update queue
type Queue interface {
	Enqueue(ctx context.Context, b *types.UpdateBatch) (uint64, error)
	WaitApplied(ctx context.Context, seq uint64) error
}

// per-object state
// mode moves NONE -> READ -> WRITE through acquires and back down through
// callbacks or policy releases; all fields are guarded by Cache.mu
type entry struct {
	mode    types.AccessMode
	epoch   uint64 // grant the mode came with
	data    []byte // committed local copy
	pending bool   // created, no bytes committed yet
	deleted bool   // deleted by a local commit the store may not have applied yet
	lastSeq uint64 // last batch that touched the object

	owner     *Txn          // local transaction with write ownership
	ownerDone chan struct{} // closed when owner ends
	acquiring chan struct{} // closed when the in-flight acquire returns
	demoting  chan struct{} // closed when the in-flight downgrade finishes
}

type Cache struct {
	mu      sync.Mutex
	entries map[types.ObjectID]*entry
	gen     uint64 // bumped when the node loses its session
	// highest batch dropped by Invalidate; acquires wait for the store to
	// apply it so the node never reads bytes older than its own commits
	barrier uint64

	remote Remote
	queue  Queue
	policy RetentionPolicy
	sched  scheduler.Scheduler
	logger hclog.Logger
}

type Options struct {
	Policy    RetentionPolicy
	Scheduler scheduler.Scheduler
	Logger    hclog.Logger
}

func New(remote Remote, queue Queue, opts Options) *Cache {
	if opts.Policy == nil {
		opts.Policy = RetainUntilCallback{}
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = scheduler.NewPool(16, opts.Logger)
	}
	return &Cache{
		entries: make(map[types.ObjectID]*entry),
		remote:  remote,
		queue:   queue,
		policy:  opts.Policy,
		sched:   opts.Scheduler,
		logger:  opts.Logger.Named("cache"),
	}
}

// Invalidate drops every cached object after the node's session was lost;
// the store has already revoked the modes. Transactions started before the
// call fail with a retryable error.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	for _, e := range c.entries {
		c.barrier = max(c.barrier, e.lastSeq)
	}
	c.logger.Warn("cache invalidated", "objects", len(c.entries), "generation", c.gen, "barrier", c.barrier)
	c.entries = make(map[types.ObjectID]*entry)
}

// waits, with mu released, until the store has applied every batch dropped by
// Invalidate
func (c *Cache) drainLocked(ctx context.Context) error {
	seq := c.barrier
	c.mu.Unlock()
	err := c.queue.WaitApplied(ctx, seq)
	c.mu.Lock()
	if err != nil {
		if errors.Is(err, types.ErrQueueClosed) {
			return types.ErrStoreUnavailable
		}
		return err
	}
	if c.barrier == seq {
		c.barrier = 0
	}
	return nil
}

// waits on ch with mu released
func (c *Cache) waitLocked(ctx context.Context, ch <-chan struct{}) error {
	c.mu.Unlock()
	defer c.mu.Lock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Cache) entryLocked(oid types.ObjectID) *entry {
	e, exists := c.entries[oid]
	if !exists {
		e = &entry{}
		c.entries[oid] = e
	}
	return e
}

// drops an entry nobody uses
func (c *Cache) gcLocked(oid types.ObjectID, e *entry) {
	if e.mode == types.ModeNone && e.owner == nil && e.acquiring == nil && e.demoting == nil && c.entries[oid] == e {
		delete(c.entries, oid)
	}
}

// ensure makes sure the node holds at least mode on oid for t, acquiring it
// from the store when needed; with own set t also takes local write ownership
// returns the committed local copy
func (c *Cache) ensure(ctx context.Context, t *Txn, oid types.ObjectID, mode types.AccessMode, own bool) (*entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		if t.gen != c.gen {
			return nil, types.ErrStoreUnavailable
		}
		e := c.entryLocked(oid)

		if e.deleted {
			return nil, types.ErrObjectNotFound
		}
		if e.owner != nil && e.owner != t {
			if err := c.waitLocked(ctx, e.ownerDone); err != nil {
				return nil, err
			}
			continue
		}
		if e.demoting != nil {
			if err := c.waitLocked(ctx, e.demoting); err != nil {
				return nil, err
			}
			continue
		}

		if e.mode.Covers(mode) {
			if own && e.owner == nil {
				e.owner = t
				e.ownerDone = make(chan struct{})
				t.owned[oid] = e
			}
			t.touched[oid] = struct{}{}
			return e, nil
		}

		if e.acquiring != nil {
			if err := c.waitLocked(ctx, e.acquiring); err != nil {
				return nil, err
			}
			continue
		}

		if c.barrier > 0 {
			if err := c.drainLocked(ctx); err != nil {
				return nil, err
			}
			continue
		}
		if err := c.acquireLocked(ctx, oid, e, mode); err != nil {
			return nil, err
		}
	}
}

// asks the store for mode, with mu released during the call
func (c *Cache) acquireLocked(ctx context.Context, oid types.ObjectID, e *entry, mode types.AccessMode) error {
	done := make(chan struct{})
	e.acquiring = done
	gen := c.gen

	c.mu.Unlock()
	g, err := c.remote.Acquire(ctx, oid, mode)
	c.mu.Lock()

	e.acquiring = nil
	close(done)

	if err != nil {
		c.gcLocked(oid, e)
		return err
	}
	if gen != c.gen {
		//the grant belongs to a session that no longer exists
		return types.ErrStoreUnavailable
	}

	//our own copy is at least as new as the store's unless we held nothing
	if e.mode == types.ModeNone {
		e.data = g.Data
		e.pending = g.Data == nil
	}
	if g.Mode > e.mode {
		e.mode = g.Mode
	}
	if g.Epoch > e.epoch {
		e.epoch = g.Epoch
	}
	c.logger.Trace("acquired", "object", oid, "mode", e.mode, "epoch", e.epoch)
	return nil
}

// access mode the node holds locally on oid
func (c *Cache) Mode(oid types.ObjectID) types.AccessMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, exists := c.entries[oid]; exists {
		return e.mode
	}
	return types.ModeNone
}

// cache size, for inspection
type Stats struct {
	Objects int
	Read    int
	Write   int
	Owned   int
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var st Stats
	for _, e := range c.entries {
		st.Objects++
		switch e.mode {
		case types.ModeRead:
			st.Read++
		case types.ModeWrite:
			st.Write++
		}
		if e.owner != nil {
			st.Owned++
		}
	}
	return st
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
