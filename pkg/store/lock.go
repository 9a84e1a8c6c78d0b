package store

import (
	"context"
	"time"

	"github.com/pixperk/cohere/pkg/metrics"
	"github.com/pixperk/cohere/pkg/types"
)

// what a node is granted on an object
// Data is nil while the object's create is pending
type Grant struct {
	Mode  types.AccessMode
	Epoch uint64
	Data  []byte
}

type holding struct {
	mode  types.AccessMode
	epoch uint64
}

type waitResult struct {
	grant Grant
	err   error
}

// one blocked acquire
type waiter struct {
	node   types.NodeID
	mode   types.AccessMode
	result chan waitResult // buffered, written once under the store mutex
	done   bool
	prev   holding // node's holding just before the grant, restored if the caller gave up
}

// per-object lock state
// holders maps each node to the mode it holds; waiters is FIFO by arrival
type lockEntry struct {
	holders map[types.NodeID]*holding
	waiters []*waiter
}

func (le *lockEntry) compatible(node types.NodeID, mode types.AccessMode) bool {
	for n, h := range le.holders {
		if n == node {
			continue
		}
		if mode == types.ModeWrite && h.mode != types.ModeNone {
			return false
		}
		if mode == types.ModeRead && h.mode == types.ModeWrite {
			return false
		}
	}
	return true
}

// mode other holders must drop to for a request of mode
func releaseTarget(mode types.AccessMode) types.AccessMode {
	if mode == types.ModeWrite {
		return types.ModeNone
	}
	return types.ModeRead
}

func (s *Store) entryLocked(oid types.ObjectID) *lockEntry {
	le, exists := s.locks[oid]
	if !exists {
		le = &lockEntry{holders: make(map[types.NodeID]*holding)}
		s.locks[oid] = le
	}
	return le
}

func (s *Store) trackLocked(node types.NodeID, oid types.ObjectID) {
	objs, exists := s.held[node]
	if !exists {
		objs = make(map[types.ObjectID]struct{})
		s.held[node] = objs
	}
	objs[oid] = struct{}{}
}

// forgets (node, oid) once the node neither holds nor waits on it
func (s *Store) untrackLocked(node types.NodeID, oid types.ObjectID) {
	if le, exists := s.locks[oid]; exists {
		if _, holds := le.holders[node]; holds {
			return
		}
		for _, w := range le.waiters {
			if w.node == node {
				return
			}
		}
	}
	if objs, exists := s.held[node]; exists {
		delete(objs, oid)
		if len(objs) == 0 {
			delete(s.held, node)
		}
	}
}

func (s *Store) gcLocked(oid types.ObjectID) {
	if le, exists := s.locks[oid]; exists && len(le.holders) == 0 && len(le.waiters) == 0 {
		delete(s.locks, oid)
	}
}

func (s *Store) grantLocked(oid types.ObjectID, le *lockEntry, node types.NodeID, mode types.AccessMode, rec *record) Grant {
	s.epoch++
	h, exists := le.holders[node]
	if !exists {
		h = &holding{}
		le.holders[node] = h
	}
	if mode > h.mode {
		h.mode = mode
	}
	h.epoch = s.epoch
	s.trackLocked(node, oid)
	return Grant{Mode: h.mode, Epoch: h.epoch, Data: clone(rec.data)}
}

// asks every holder conflicting with w to step down
func (s *Store) requestReleasesLocked(oid types.ObjectID, le *lockEntry, w *waiter) {
	target := releaseTarget(w.mode)
	for n, h := range le.holders {
		if n == w.node || h.mode <= target {
			continue
		}
		s.notifier.RequestRelease(n, oid, target, h.epoch)
	}
}

func (s *Store) deliverLocked(w *waiter, g Grant, err error) {
	if w.done {
		return
	}
	w.done = true
	w.result <- waitResult{grant: g, err: err}
	metrics.Waiters.Dec()
}

// grants queued requests from the head while they are compatible
// stops at the first blocked waiter so a queued writer is never overtaken
func (s *Store) reevaluateLocked(oid types.ObjectID) {
	le, exists := s.locks[oid]
	if !exists {
		return
	}
	rec, exists := s.objects[oid]
	if !exists {
		s.failWaitersLocked(oid, le, types.ErrObjectNotFound)
		s.gcLocked(oid)
		return
	}

	for len(le.waiters) > 0 {
		head := le.waiters[0]
		if head.done {
			le.waiters = le.waiters[1:]
			continue
		}
		if !le.compatible(head.node, head.mode) {
			break
		}
		if prev, ok := le.holders[head.node]; ok {
			head.prev = *prev
		} else {
			head.prev = holding{}
		}
		g := s.grantLocked(oid, le, head.node, head.mode, rec)
		le.waiters = le.waiters[1:]
		s.deliverLocked(head, g, nil)
	}

	if len(le.waiters) > 0 {
		s.requestReleasesLocked(oid, le, le.waiters[0])
	}
	s.gcLocked(oid)
}

func (s *Store) failWaitersLocked(oid types.ObjectID, le *lockEntry, err error) {
	if len(le.waiters) > 0 {
		s.logger.Warn("failing waiters", "object", oid, "waiters", len(le.waiters), "error", err)
	}
	waiters := le.waiters
	le.waiters = nil
	for _, w := range waiters {
		s.deliverLocked(w, Grant{}, err)
		s.untrackLocked(w.node, oid)
	}
}

// grants node mode on oid, blocking behind conflicting holders and earlier waiters
// holding a mode that already covers the request returns immediately
// the wait ends on grant, on ctx cancellation, when the object is deleted or
// when the node's session is revoked
func (s *Store) Acquire(ctx context.Context, node types.NodeID, oid types.ObjectID, mode types.AccessMode) (Grant, error) {
	if mode != types.ModeRead && mode != types.ModeWrite {
		return Grant{}, types.ErrInvalidMode
	}
	start := time.Now()
	modeLabel := mode.String()

	s.mu.Lock()
	rec, ok := s.visibleLocked(oid, node)
	if !ok {
		s.mu.Unlock()
		metrics.AcquireTotal.WithLabelValues(modeLabel, "not_found").Inc()
		return Grant{}, types.ErrObjectNotFound
	}

	le := s.entryLocked(oid)
	if h, holds := le.holders[node]; holds && h.mode.Covers(mode) {
		g := Grant{Mode: h.mode, Epoch: h.epoch, Data: clone(rec.data)}
		s.mu.Unlock()
		metrics.AcquireTotal.WithLabelValues(modeLabel, "granted").Inc()
		return g, nil
	}

	if len(le.waiters) == 0 && le.compatible(node, mode) {
		g := s.grantLocked(oid, le, node, mode, rec)
		s.mu.Unlock()
		metrics.AcquireTotal.WithLabelValues(modeLabel, "granted").Inc()
		metrics.AcquireDuration.WithLabelValues(modeLabel).Observe(time.Since(start).Seconds())
		return g, nil
	}

	w := &waiter{
		node:   node,
		mode:   mode,
		result: make(chan waitResult, 1),
	}
	le.waiters = append(le.waiters, w)
	s.trackLocked(node, oid)
	metrics.Waiters.Inc()
	metrics.AcquireTotal.WithLabelValues(modeLabel, "queued").Inc()
	s.logger.Trace("acquire queued", "node", node, "object", oid, "mode", mode, "position", len(le.waiters))
	s.requestReleasesLocked(oid, le, w)
	s.mu.Unlock()

	select {
	case r := <-w.result:
		if r.err != nil {
			metrics.AcquireTotal.WithLabelValues(modeLabel, "failed").Inc()
			return Grant{}, r.err
		}
		metrics.AcquireDuration.WithLabelValues(modeLabel).Observe(time.Since(start).Seconds())
		return r.grant, nil

	case <-ctx.Done():
		s.cancelWait(oid, w)
		metrics.AcquireTotal.WithLabelValues(modeLabel, "cancelled").Inc()
		return Grant{}, ctx.Err()
	}
}

// removes an abandoned waiter, or hands back a grant that raced the cancellation
func (s *Store) cancelWait(oid types.ObjectID, w *waiter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w.done {
		r := <-w.result
		if r.err == nil {
			s.logger.Debug("releasing grant delivered after cancellation", "node", w.node, "object", oid)
			s.setHoldingLocked(oid, w.node, w.prev)
		}
		return
	}

	w.done = true
	metrics.Waiters.Dec()
	if le, exists := s.locks[oid]; exists {
		for i, x := range le.waiters {
			if x == w {
				le.waiters = append(le.waiters[:i], le.waiters[i+1:]...)
				break
			}
		}
	}
	s.untrackLocked(w.node, oid)
	s.reevaluateLocked(oid)
}

// lowers node's holding on oid to h, then lets waiters through
func (s *Store) setHoldingLocked(oid types.ObjectID, node types.NodeID, h holding) {
	le, exists := s.locks[oid]
	if !exists {
		return
	}
	cur, holds := le.holders[node]
	if !holds {
		return
	}
	if h.mode == types.ModeNone {
		delete(le.holders, node)
		s.untrackLocked(node, oid)
	} else {
		cur.mode = h.mode
		if h.epoch != 0 {
			cur.epoch = h.epoch
		}
	}
	s.notifier.Released(node, oid, h.mode)
	s.reevaluateLocked(oid)
}

// lowers node's mode on oid to target; acknowledges callbacks
// an epoch older than the node's current grant is a stale acknowledgement:
// it is ignored and any outstanding callback is issued again
func (s *Store) Downgrade(node types.NodeID, oid types.ObjectID, target types.AccessMode, epoch uint64) error {
	if !target.Valid() || target == types.ModeWrite {
		return types.ErrInvalidMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	le, exists := s.locks[oid]
	if !exists {
		return nil
	}
	h, holds := le.holders[node]
	if !holds {
		return nil
	}

	if epoch != 0 && epoch < h.epoch {
		s.logger.Debug("ignoring stale downgrade", "node", node, "object", oid, "epoch", epoch, "current", h.epoch)
		s.notifier.Forget(node, oid)
		if len(le.waiters) > 0 {
			s.requestReleasesLocked(oid, le, le.waiters[0])
		}
		return nil
	}

	if target >= h.mode {
		s.notifier.Released(node, oid, h.mode)
		return nil
	}
	s.setHoldingLocked(oid, node, holding{mode: target})
	return nil
}

// drops node's mode on oid entirely
func (s *Store) Release(node types.NodeID, oid types.ObjectID) error {
	return s.Downgrade(node, oid, types.ModeNone, 0)
}

// revokes every mode node holds and cancels its queued requests
// used on disconnect, session expiry and callback timeout
func (s *Store) ReleaseAll(node types.NodeID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	released := 0
	objs := s.held[node]
	delete(s.held, node)

	for oid := range objs {
		le, exists := s.locks[oid]
		if !exists {
			continue
		}
		if _, holds := le.holders[node]; holds {
			delete(le.holders, node)
			released++
		}
		kept := le.waiters[:0]
		for _, w := range le.waiters {
			if w.node == node {
				s.deliverLocked(w, Grant{}, types.ErrSessionClosed)
				continue
			}
			kept = append(kept, w)
		}
		le.waiters = kept
		s.reevaluateLocked(oid)
	}

	s.notifier.NodeGone(node)
	if released > 0 {
		s.logger.Info("revoked node access", "node", node, "objects", released)
	}
	return released
}

// current holders of oid, for inspection
func (s *Store) Holders(oid types.ObjectID) map[types.NodeID]types.AccessMode {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[types.NodeID]types.AccessMode)
	if le, exists := s.locks[oid]; exists {
		for n, h := range le.holders {
			out[n] = h.mode
		}
	}
	return out
}

// number of queued requests on oid
func (s *Store) Waiting(oid types.ObjectID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if le, exists := s.locks[oid]; exists {
		return len(le.waiters)
	}
	return 0
}
