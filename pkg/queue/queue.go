// Package queue carries committed update batches from a node to the store in
// strict sequence order, durably and with bounded backlog.
package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-hclog"
	"github.com/pixperk/cohere/pkg/metrics"
	"github.com/pixperk/cohere/pkg/types"
)

// delivers batches to the store
// Apply returns nil for applied and duplicate batches, an error matching
// types.ErrOutOfSequence or types.ErrBatchRejected, or a transport error
type Sender interface {
	Apply(ctx context.Context, b *types.UpdateBatch) error
	Status(ctx context.Context, node types.NodeID) (uint64, error)
}

// durable record of unacknowledged batches
type Journal interface {
	Append(b *types.UpdateBatch) error
	Truncate(seq uint64) error
	Load() ([]*types.UpdateBatch, error)
}

type Config struct {
	// unacknowledged batches allowed before Enqueue blocks
	MaxPending int
	// how long one delivery may wait for its acknowledgement
	AckTimeout time.Duration
	// consecutive failed deliveries after which new commits fail, 0 never fails them
	MaxRetries int
	// retry pacing
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// per-node update queue
// critical :
// - sequence numbers are assigned at enqueue, gapless and increasing
// - a batch leaves the journal only after the store acknowledged it
// - delivery is strictly in sequence order, one batch in flight
type Queue struct {
	mu      sync.Mutex
	changed chan struct{} // closed and replaced on every state change

	node    types.NodeID
	pending []*types.UpdateBatch
	nextSeq uint64
	acked   uint64
	failed  error
	closed  bool

	journal Journal
	sender  Sender
	cfg     Config
	logger  hclog.Logger
}

// Open restores unacknowledged batches from the journal and asks the store
// where the node's sequence stands; batches the store already applied are
// dropped, the rest are delivered again by Run
func Open(ctx context.Context, node types.NodeID, journal Journal, sender Sender, cfg Config, logger hclog.Logger) (*Queue, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if cfg.MaxPending <= 0 {
		cfg.MaxPending = 1
	}
	if journal == nil {
		journal = NewMemoryJournal()
	}

	q := &Queue{
		changed: make(chan struct{}),
		node:    node,
		journal: journal,
		sender:  sender,
		cfg:     cfg,
		logger:  logger.Named("queue").With("node", node),
	}

	stored, err := journal.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}

	last, err := sender.Status(ctx, node)
	if err != nil {
		return nil, fmt.Errorf("failed to query last applied batch: %w", err)
	}

	q.acked = last
	q.nextSeq = last + 1
	for _, b := range stored {
		if b.Seq <= last {
			continue
		}
		if b.Seq != q.nextSeq {
			return nil, fmt.Errorf("journal gap: have batch %d, store expects %d", b.Seq, q.nextSeq)
		}
		b.Node = node
		q.pending = append(q.pending, b)
		q.nextSeq++
	}
	if err := journal.Truncate(last); err != nil {
		return nil, fmt.Errorf("failed to truncate journal: %w", err)
	}

	if len(q.pending) > 0 {
		q.logger.Info("replaying unacknowledged batches", "from", q.pending[0].Seq, "count", len(q.pending), "last_applied", last)
	}
	metrics.QueueDepth.Set(float64(len(q.pending)))
	return q, nil
}

// must be called with mu held
func (q *Queue) broadcastLocked() {
	close(q.changed)
	q.changed = make(chan struct{})
}

// waits for the next state change, releasing mu meanwhile
func (q *Queue) waitLocked(ctx context.Context) error {
	ch := q.changed
	q.mu.Unlock()
	defer q.mu.Lock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enqueue assigns b the next sequence number, journals it and returns without
// waiting for delivery; it blocks while MaxPending batches are unacknowledged
func (q *Queue) Enqueue(ctx context.Context, b *types.UpdateBatch) (uint64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if q.closed {
			return 0, types.ErrQueueClosed
		}
		if q.failed != nil {
			return 0, fmt.Errorf("%w: %v", types.ErrStoreUnavailable, q.failed)
		}
		if len(q.pending) < q.cfg.MaxPending {
			break
		}
		q.logger.Debug("queue full, commit waiting", "pending", len(q.pending), "backlog", humanize.Bytes(q.backlogLocked()))
		if err := q.waitLocked(ctx); err != nil {
			return 0, err
		}
	}

	b.Node = q.node
	b.Seq = q.nextSeq
	if err := q.journal.Append(b); err != nil {
		return 0, fmt.Errorf("failed to journal batch %d: %w", b.Seq, err)
	}
	q.nextSeq++
	q.pending = append(q.pending, b)
	metrics.QueueDepth.Set(float64(len(q.pending)))
	q.logger.Trace("batch enqueued", "seq", b.Seq, "size", humanize.Bytes(uint64(b.Size())))
	q.broadcastLocked()

	return b.Seq, nil
}

func (q *Queue) backlogLocked() uint64 {
	var n uint64
	for _, b := range q.pending {
		n += uint64(b.Size())
	}
	return n
}

// WaitApplied blocks until the store has processed every batch up to seq
func (q *Queue) WaitApplied(ctx context.Context, seq uint64) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.acked < seq {
		if q.closed {
			return types.ErrQueueClosed
		}
		if err := q.waitLocked(ctx); err != nil {
			return err
		}
	}
	return nil
}

// waits for everything enqueued so far
func (q *Queue) Flush(ctx context.Context) error {
	q.mu.Lock()
	last := q.nextSeq - 1
	q.mu.Unlock()
	return q.WaitApplied(ctx, last)
}

// drops everything up to seq from memory and journal
func (q *Queue) ack(seq uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if seq >= q.nextSeq {
		q.logger.Error("store acknowledged batches this node never sent", "seq", seq, "next", q.nextSeq)
		seq = q.nextSeq - 1
	}
	if seq <= q.acked {
		return
	}
	q.acked = seq
	i := 0
	for i < len(q.pending) && q.pending[i].Seq <= seq {
		i++
	}
	q.pending = q.pending[i:]
	q.failed = nil

	if err := q.journal.Truncate(seq); err != nil {
		//batches stay journaled and are acknowledged as duplicates after a restart
		q.logger.Error("failed to truncate journal", "seq", seq, "error", err)
	}
	metrics.QueueDepth.Set(float64(len(q.pending)))
	q.broadcastLocked()
}

func (q *Queue) setFailed(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.failed == nil {
		q.logger.Error("update delivery failing, rejecting new commits", "error", err)
	}
	q.failed = err
	q.broadcastLocked()
}

// next batch to deliver, waiting while the queue is empty
func (q *Queue) head(ctx context.Context) (*types.UpdateBatch, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if q.closed {
			return nil, types.ErrQueueClosed
		}
		if len(q.pending) > 0 {
			return q.pending[0], nil
		}
		if err := q.waitLocked(ctx); err != nil {
			return nil, err
		}
	}
}

// Resync asks the store for the node's last applied sequence and drops what it
// already has; used after reconnecting
func (q *Queue) Resync(ctx context.Context) error {
	last, err := q.sender.Status(ctx, q.node)
	if err != nil {
		return err
	}
	q.mu.Lock()
	if last >= q.nextSeq {
		q.mu.Unlock()
		return fmt.Errorf("store reports batch %d applied but only %d were sent", last, q.nextSeq-1)
	}
	q.mu.Unlock()
	q.ack(last)
	return nil
}

// Run is the sender loop; it returns when ctx is cancelled or the queue is closed
func (q *Queue) Run(ctx context.Context) error {
	bo := backoff.NewExponentialBackOff()
	if q.cfg.InitialBackoff > 0 {
		bo.InitialInterval = q.cfg.InitialBackoff
	}
	if q.cfg.MaxBackoff > 0 {
		bo.MaxInterval = q.cfg.MaxBackoff
	}
	failures := 0

	for {
		b, err := q.head(ctx)
		if err != nil {
			if errors.Is(err, types.ErrQueueClosed) {
				return nil
			}
			return err
		}

		err = q.deliver(ctx, b)
		var oos *types.OutOfSequenceError
		switch {
		case err == nil:
			q.ack(b.Seq)

		case errors.Is(err, types.ErrBatchRejected):
			//the store consumed the sequence number without applying anything
			q.logger.Warn("batch rejected by store", "seq", b.Seq, "error", err)
			q.ack(b.Seq)

		case errors.As(err, &oos) && oos.Expected > b.Seq:
			//an earlier delivery was applied but its acknowledgement was lost
			q.logger.Debug("store is ahead of queue", "seq", b.Seq, "expected", oos.Expected)
			q.ack(oos.Expected - 1)

		case ctx.Err() != nil:
			return ctx.Err()

		default:
			failures++
			metrics.QueueRetryTotal.Inc()
			if errors.As(err, &oos) {
				//the store is missing batches this node no longer has
				if rerr := q.Resync(ctx); rerr != nil {
					q.logger.Error("resync failed", "error", rerr)
				}
			}
			if q.cfg.MaxRetries > 0 && failures >= q.cfg.MaxRetries {
				q.setFailed(err)
			}
			wait := bo.NextBackOff()
			q.logger.Warn("batch delivery failed, retrying", "seq", b.Seq, "attempt", failures, "backoff", wait, "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			continue
		}

		failures = 0
		bo.Reset()
	}
}

func (q *Queue) deliver(ctx context.Context, b *types.UpdateBatch) error {
	if q.cfg.AckTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.cfg.AckTimeout)
		defer cancel()
	}
	return q.sender.Apply(ctx, b)
}

// stops Enqueue, WaitApplied and Run; unacknowledged batches stay journaled
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.broadcastLocked()
}

// queue position, for inspection
type Stats struct {
	Pending     int
	LastAcked   uint64
	NextSeq     uint64
	BacklogSize uint64
	Failed      bool
}

func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Stats{
		Pending:     len(q.pending),
		LastAcked:   q.acked,
		NextSeq:     q.nextSeq,
		BacklogSize: q.backlogLocked(),
		Failed:      q.failed != nil,
	}
}

func (q *Queue) Node() types.NodeID {
	return q.node
}
