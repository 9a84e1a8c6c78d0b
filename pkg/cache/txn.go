package cache

import (
	"context"
	"errors"
	"slices"

	"github.com/hashicorp/go-hclog"
	"github.com/pixperk/cohere/pkg/metrics"
	"github.com/pixperk/cohere/pkg/types"
	"github.com/rs/xid"
)

// local transaction
// writes stay in an overlay private to the transaction until Commit
// objects it writes or deletes are locally owned: other transactions on the
// node, and callbacks from the store, wait for it to end
type Txn struct {
	id     xid.ID
	c      *Cache
	gen    uint64
	logger hclog.Logger

	writes  map[types.ObjectID][]byte
	deletes map[types.ObjectID]struct{}
	owned   map[types.ObjectID]*entry
	touched map[types.ObjectID]struct{}
	done    bool
}

func (c *Cache) Begin() *Txn {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	id := xid.New()
	return &Txn{
		id:      id,
		c:       c,
		gen:     gen,
		logger:  c.logger.With("txn", id.String()),
		writes:  make(map[types.ObjectID][]byte),
		deletes: make(map[types.ObjectID]struct{}),
		owned:   make(map[types.ObjectID]*entry),
		touched: make(map[types.ObjectID]struct{}),
	}
}

func (t *Txn) ID() string {
	return t.id.String()
}

func (t *Txn) Read(ctx context.Context, oid types.ObjectID) ([]byte, error) {
	if t.done {
		return nil, types.ErrTxnDone
	}
	if data, ok := t.writes[oid]; ok {
		return clone(data), nil
	}
	if _, ok := t.deletes[oid]; ok {
		return nil, types.ErrObjectNotFound
	}

	e, err := t.c.ensure(ctx, t, oid, types.ModeRead, false)
	if err != nil {
		return nil, err
	}

	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if e.pending {
		return nil, types.ErrObjectNotFound
	}
	return clone(e.data), nil
}

func (t *Txn) Write(ctx context.Context, oid types.ObjectID, data []byte) error {
	if t.done {
		return types.ErrTxnDone
	}
	if _, ok := t.deletes[oid]; ok {
		return types.ErrObjectNotFound
	}
	if _, err := t.c.ensure(ctx, t, oid, types.ModeWrite, true); err != nil {
		return err
	}
	if data == nil {
		data = []byte{}
	}
	t.writes[oid] = clone(data)
	return nil
}

// Create allocates a new object holding data, optionally bound to name
// the object is invisible to other nodes until the transaction commits
func (t *Txn) Create(ctx context.Context, name string, data []byte) (types.ObjectID, error) {
	if t.done {
		return types.InvalidObjectID, types.ErrTxnDone
	}

	oid, g, err := t.c.remote.Create(ctx, name)
	if err != nil {
		return types.InvalidObjectID, err
	}

	c := t.c
	c.mu.Lock()
	if t.gen != c.gen {
		c.mu.Unlock()
		return types.InvalidObjectID, types.ErrStoreUnavailable
	}
	e := c.entryLocked(oid)
	e.mode = g.Mode
	e.epoch = g.Epoch
	e.pending = true
	e.owner = t
	e.ownerDone = make(chan struct{})
	t.owned[oid] = e
	t.touched[oid] = struct{}{}
	c.mu.Unlock()

	if data == nil {
		data = []byte{}
	}
	t.writes[oid] = clone(data)
	t.logger.Debug("object created", "object", oid, "name", name)
	return oid, nil
}

func (t *Txn) Delete(ctx context.Context, oid types.ObjectID) error {
	if t.done {
		return types.ErrTxnDone
	}
	if _, ok := t.deletes[oid]; ok {
		return types.ErrObjectNotFound
	}
	if _, err := t.c.ensure(ctx, t, oid, types.ModeWrite, true); err != nil {
		return err
	}
	delete(t.writes, oid)
	t.deletes[oid] = struct{}{}
	return nil
}

func (t *Txn) Lookup(ctx context.Context, name string) (types.ObjectID, error) {
	if t.done {
		return types.InvalidObjectID, types.ErrTxnDone
	}
	return t.c.remote.Lookup(ctx, name)
}

// Acquire takes mode on every id in ascending id order
// transactions that acquire their whole working set this way cannot deadlock
// against each other across nodes
func (t *Txn) Acquire(ctx context.Context, mode types.AccessMode, ids ...types.ObjectID) error {
	if t.done {
		return types.ErrTxnDone
	}
	if mode != types.ModeRead && mode != types.ModeWrite {
		return types.ErrInvalidMode
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	for _, oid := range slices.Compact(sorted) {
		if _, err := t.c.ensure(ctx, t, oid, mode, mode == types.ModeWrite); err != nil {
			return err
		}
	}
	return nil
}

// Commit applies the transaction's writes to the cache and hands them to the
// update queue as one batch; it does not wait for the store
// a retryable error (types.IsRetryable) means the transaction may be run again
func (t *Txn) Commit(ctx context.Context) error {
	if t.done {
		return types.ErrTxnDone
	}
	t.done = true
	c := t.c

	if len(t.writes) == 0 && len(t.deletes) == 0 {
		c.mu.Lock()
		t.endLocked()
		c.mu.Unlock()
		metrics.TxnTotal.WithLabelValues("committed").Inc()
		return nil
	}

	c.mu.Lock()
	if t.gen != c.gen {
		t.endLocked()
		c.mu.Unlock()
		metrics.TxnTotal.WithLabelValues("failed").Inc()
		return types.ErrStoreUnavailable
	}
	c.mu.Unlock()

	batch := &types.UpdateBatch{Writes: t.writes}
	for oid := range t.deletes {
		batch.Deletes = append(batch.Deletes, oid)
	}
	slices.Sort(batch.Deletes)

	//owned objects cannot change under us, so the cache lock is not needed here
	seq, err := c.queue.Enqueue(ctx, batch)

	c.mu.Lock()
	if err != nil {
		t.endLocked()
		c.mu.Unlock()
		metrics.TxnTotal.WithLabelValues("failed").Inc()
		t.logger.Warn("commit failed", "error", err)
		if errors.Is(err, types.ErrQueueClosed) {
			return types.ErrStoreUnavailable
		}
		return err
	}

	for oid, data := range t.writes {
		e := t.owned[oid]
		e.data = data
		e.pending = false
		e.lastSeq = seq
	}
	for oid := range t.deletes {
		e := t.owned[oid]
		e.data = nil
		e.deleted = true
		e.lastSeq = seq
	}
	if t.gen != c.gen {
		//invalidated while enqueueing; the batch still goes out
		c.barrier = max(c.barrier, seq)
	}
	touched := t.touched
	t.endLocked()
	c.mu.Unlock()

	metrics.TxnTotal.WithLabelValues("committed").Inc()
	t.logger.Debug("committed", "seq", seq, "writes", len(t.writes), "deletes", len(t.deletes))

	if len(t.deletes) > 0 {
		c.forgetDeleted(seq, t.deletes)
	}
	c.applyPolicy(touched)
	return nil
}

// Abort discards the transaction's writes; held modes are kept
// objects created by the transaction stay allocated at the store
func (t *Txn) Abort() {
	if t.done {
		return
	}
	t.done = true

	t.c.mu.Lock()
	t.endLocked()
	t.c.mu.Unlock()

	metrics.TxnTotal.WithLabelValues("aborted").Inc()
	t.logger.Trace("aborted", "writes", len(t.writes))
}

// gives up local ownership, waking waiters
func (t *Txn) endLocked() {
	for _, e := range t.owned {
		if e.owner == t {
			e.owner = nil
			close(e.ownerDone)
			e.ownerDone = nil
		}
	}
	t.owned = nil
}
