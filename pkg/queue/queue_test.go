package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pixperk/cohere/pkg/store"
	"github.com/pixperk/cohere/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sends batches straight into a store
type storeSender struct {
	s *store.Store

	mu       sync.Mutex
	gate     chan struct{}    // when set, Apply waits for it
	failures int              // fail this many calls before reaching the store
	lostAcks int              // apply, then report failure this many times
	applied  []uint64         // sequence numbers the store applied
	errs     map[uint64]error // scripted replies by sequence number
}

func newStoreSender() *storeSender {
	return &storeSender{s: store.New(nil), errs: make(map[uint64]error)}
}

func (f *storeSender) Apply(ctx context.Context, b *types.UpdateBatch) error {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[b.Seq]; ok {
		delete(f.errs, b.Seq)
		return err
	}
	if f.failures > 0 {
		f.failures--
		return types.ErrTransportFailure
	}
	res, err := f.s.Apply(types.ApplyBatchCmd{Batch: b})
	if err != nil {
		return err
	}
	if !res.(store.ApplyBatchResponse).Duplicate {
		f.applied = append(f.applied, b.Seq)
	}
	if f.lostAcks > 0 {
		f.lostAcks--
		return types.ErrTransportFailure
	}
	return nil
}

func (f *storeSender) Status(ctx context.Context, node types.NodeID) (uint64, error) {
	return f.s.Status(node), nil
}

func (f *storeSender) appliedSeqs() []uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uint64(nil), f.applied...)
}

// creates a committed object through a helper node so batches have a target
func (f *storeSender) object(t *testing.T) types.ObjectID {
	res, err := f.s.Apply(types.CreateObjectCmd{Node: "helper"})
	require.NoError(t, err)
	oid := res.(store.CreateObjectResponse).ID
	seq := f.s.Status("helper") + 1
	_, err = f.s.Apply(types.ApplyBatchCmd{Batch: &types.UpdateBatch{Node: "helper", Seq: seq, Writes: map[types.ObjectID][]byte{oid: {}}}})
	require.NoError(t, err)
	return oid
}

func fastConfig() Config {
	return Config{
		MaxPending:     16,
		AckTimeout:     time.Second,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}
}

func write(oid types.ObjectID, v string) *types.UpdateBatch {
	return &types.UpdateBatch{Writes: map[types.ObjectID][]byte{oid: []byte(v)}}
}

func startQueue(t *testing.T, q *Queue) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		q.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func waitCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestDeliversInSequenceOrder(t *testing.T) {
	sender := newStoreSender()
	oid := sender.object(t)

	q, err := Open(context.Background(), "n1", nil, sender, fastConfig(), nil)
	require.NoError(t, err)
	startQueue(t, q)

	var last uint64
	for _, v := range []string{"a", "b", "c"} {
		last, err = q.Enqueue(context.Background(), write(oid, v))
		require.NoError(t, err)
	}
	assert.Equal(t, uint64(3), last)

	require.NoError(t, q.WaitApplied(waitCtx(t), last))
	assert.Equal(t, []uint64{1, 2, 3}, sender.appliedSeqs())

	rec, ok := sender.s.Get(oid)
	require.True(t, ok)
	assert.Equal(t, []byte("c"), rec.Data)
	assert.Equal(t, 0, q.Stats().Pending)
}

// TestLostAckAppliedOnce tests that a retried batch the store already has is not reapplied
func TestLostAckAppliedOnce(t *testing.T) {
	sender := newStoreSender()
	oid := sender.object(t)
	sender.lostAcks = 2

	q, err := Open(context.Background(), "n1", nil, sender, fastConfig(), nil)
	require.NoError(t, err)
	startQueue(t, q)

	seq, err := q.Enqueue(context.Background(), write(oid, "x"))
	require.NoError(t, err)
	require.NoError(t, q.WaitApplied(waitCtx(t), seq))

	assert.Equal(t, []uint64{1}, sender.appliedSeqs())
	assert.Equal(t, uint64(1), sender.s.Status("n1"))
}

// TestReplayAfterRestart tests that unacknowledged batches are resent from the
// store's last applied sequence
func TestReplayAfterRestart(t *testing.T) {
	sender := newStoreSender()
	oid := sender.object(t)
	journal := NewMemoryJournal()

	//first life: batches 1-4 applied, 5 journaled but never delivered
	for seq := uint64(1); seq <= 5; seq++ {
		b := write(oid, string(rune('0'+seq)))
		b.Node, b.Seq = "n1", seq
		require.NoError(t, journal.Append(b))
		if seq <= 4 {
			_, err := sender.s.Apply(types.ApplyBatchCmd{Batch: b})
			require.NoError(t, err)
		}
	}

	q, err := Open(context.Background(), "n1", journal, sender, fastConfig(), nil)
	require.NoError(t, err)
	st := q.Stats()
	assert.Equal(t, 1, st.Pending)
	assert.Equal(t, uint64(4), st.LastAcked)
	assert.Equal(t, uint64(6), st.NextSeq)

	startQueue(t, q)
	require.NoError(t, q.WaitApplied(waitCtx(t), 5))

	assert.Equal(t, []uint64{5}, sender.appliedSeqs())
	rec, _ := sender.s.Get(oid)
	assert.Equal(t, []byte("5"), rec.Data)

	left, err := journal.Load()
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestOpenContinuesStoreSequence(t *testing.T) {
	sender := newStoreSender()
	oid := sender.object(t)
	for seq := uint64(1); seq <= 3; seq++ {
		b := write(oid, "old")
		b.Node, b.Seq = "n1", seq
		_, err := sender.s.Apply(types.ApplyBatchCmd{Batch: b})
		require.NoError(t, err)
	}

	//an empty journal must not restart numbering at 1
	q, err := Open(context.Background(), "n1", nil, sender, fastConfig(), nil)
	require.NoError(t, err)
	startQueue(t, q)

	seq, err := q.Enqueue(context.Background(), write(oid, "new"))
	require.NoError(t, err)
	assert.Equal(t, uint64(4), seq)
	require.NoError(t, q.WaitApplied(waitCtx(t), seq))
	rec, _ := sender.s.Get(oid)
	assert.Equal(t, []byte("new"), rec.Data)
}

func TestBackpressureBlocksEnqueue(t *testing.T) {
	sender := newStoreSender()
	oid := sender.object(t)
	gate := make(chan struct{})
	sender.gate = gate

	cfg := fastConfig()
	cfg.MaxPending = 2
	cfg.AckTimeout = 0
	q, err := Open(context.Background(), "n1", nil, sender, cfg, nil)
	require.NoError(t, err)
	startQueue(t, q)

	_, err = q.Enqueue(context.Background(), write(oid, "1"))
	require.NoError(t, err)
	_, err = q.Enqueue(context.Background(), write(oid, "2"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = q.Enqueue(ctx, write(oid, "3"))
	require.ErrorIs(t, err, context.DeadlineExceeded)

	enqueued := make(chan uint64, 1)
	go func() {
		seq, err := q.Enqueue(context.Background(), write(oid, "3"))
		assert.NoError(t, err)
		enqueued <- seq
	}()

	close(gate)
	select {
	case seq := <-enqueued:
		assert.Equal(t, uint64(3), seq)
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue stayed blocked after acknowledgements")
	}
	require.NoError(t, q.Flush(waitCtx(t)))
}

func TestRejectedBatchDoesNotStallQueue(t *testing.T) {
	sender := newStoreSender()
	oid := sender.object(t)

	q, err := Open(context.Background(), "n1", nil, sender, fastConfig(), nil)
	require.NoError(t, err)
	startQueue(t, q)

	_, err = q.Enqueue(context.Background(), write(999, "ghost"))
	require.NoError(t, err)
	seq, err := q.Enqueue(context.Background(), write(oid, "real"))
	require.NoError(t, err)

	require.NoError(t, q.WaitApplied(waitCtx(t), seq))
	assert.Equal(t, []uint64{2}, sender.appliedSeqs())
	assert.Equal(t, uint64(2), sender.s.Status("n1"))
}

func TestStoreAheadAdvancesQueue(t *testing.T) {
	sender := newStoreSender()
	oid := sender.object(t)
	sender.errs[1] = &types.OutOfSequenceError{Node: "n1", Got: 1, Expected: 3}

	q, err := Open(context.Background(), "n1", nil, sender, fastConfig(), nil)
	require.NoError(t, err)

	_, err = q.Enqueue(context.Background(), write(oid, "1"))
	require.NoError(t, err)
	_, err = q.Enqueue(context.Background(), write(oid, "2"))
	require.NoError(t, err)
	startQueue(t, q)

	require.NoError(t, q.WaitApplied(waitCtx(t), 2))
	assert.Equal(t, uint64(2), q.Stats().LastAcked)
}

func TestRetriesExhaustedFailNewCommits(t *testing.T) {
	sender := newStoreSender()
	oid := sender.object(t)
	sender.failures = 1 << 20

	cfg := fastConfig()
	cfg.MaxRetries = 3
	q, err := Open(context.Background(), "n1", nil, sender, cfg, nil)
	require.NoError(t, err)
	startQueue(t, q)

	seq, err := q.Enqueue(context.Background(), write(oid, "1"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return q.Stats().Failed }, 2*time.Second, time.Millisecond)
	_, err = q.Enqueue(context.Background(), write(oid, "2"))
	require.ErrorIs(t, err, types.ErrStoreUnavailable)
	assert.True(t, types.IsRetryable(err))

	//delivery recovers, commits are accepted again
	sender.mu.Lock()
	sender.failures = 0
	sender.mu.Unlock()
	require.NoError(t, q.WaitApplied(waitCtx(t), seq))
	_, err = q.Enqueue(context.Background(), write(oid, "2"))
	assert.NoError(t, err)
}

func TestCloseUnblocksWaiters(t *testing.T) {
	sender := newStoreSender()
	q, err := Open(context.Background(), "n1", nil, sender, fastConfig(), nil)
	require.NoError(t, err)

	errs := make(chan error, 1)
	go func() { errs <- q.WaitApplied(context.Background(), 10) }()
	q.Close()

	select {
	case err := <-errs:
		assert.True(t, errors.Is(err, types.ErrQueueClosed))
	case <-time.After(time.Second):
		t.Fatal("waiter not released by close")
	}
	_, err = q.Enqueue(context.Background(), write(1, "x"))
	assert.ErrorIs(t, err, types.ErrQueueClosed)
}
