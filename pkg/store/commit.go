package store

import (
	"fmt"

	"github.com/pixperk/cohere/pkg/metrics"
	"github.com/pixperk/cohere/pkg/types"
)

// returned when a batch is accepted
// Duplicate reports a resend of a batch that was already applied
type ApplyBatchResponse struct {
	Seq       uint64
	Duplicate bool
}

// returned when a batch is in sequence but refers to objects that no longer
// exist; the sequence number is consumed and nothing else changes
type BatchRejectedError struct {
	Seq uint64
	Err error
}

func (e *BatchRejectedError) Error() string {
	return fmt.Sprintf("batch %d rejected: %v", e.Seq, e.Err)
}

func (e *BatchRejectedError) Unwrap() error {
	return e.Err
}

func (e *BatchRejectedError) Is(target error) bool {
	return target == types.ErrBatchRejected
}

// applies all writes and deletes of b or none of them
// runs under the store mutex, so acquires never see a partial batch
func (s *Store) applyBatch(b *types.UpdateBatch) (any, error) {
	if b == nil {
		return nil, fmt.Errorf("nil update batch")
	}

	last := s.lastSeq[b.Node]
	if b.Seq <= last {
		metrics.BatchTotal.WithLabelValues("duplicate").Inc()
		s.logger.Debug("duplicate batch acknowledged", "node", b.Node, "seq", b.Seq, "last", last)
		return ApplyBatchResponse{Seq: b.Seq, Duplicate: true}, nil
	}
	if b.Seq != last+1 {
		metrics.BatchTotal.WithLabelValues("out_of_sequence").Inc()
		return nil, &types.OutOfSequenceError{Node: b.Node, Got: b.Seq, Expected: last + 1}
	}

	//validate everything before touching state
	for id := range b.Writes {
		if _, exists := s.objects[id]; !exists {
			return s.rejectLocked(b, fmt.Errorf("write %s: %w", id, types.ErrObjectNotFound))
		}
	}
	for _, id := range b.Deletes {
		if _, exists := s.objects[id]; !exists {
			return s.rejectLocked(b, fmt.Errorf("delete %s: %w", id, types.ErrObjectNotFound))
		}
	}

	for id, data := range b.Writes {
		rec := s.objects[id]
		rec.data = clone(data)
		if rec.data == nil {
			rec.data = []byte{}
		}
		rec.pending = false
	}
	for _, id := range b.Deletes {
		s.deleteLocked(id)
	}
	s.lastSeq[b.Node] = b.Seq

	metrics.BatchTotal.WithLabelValues("applied").Inc()
	metrics.Objects.Set(float64(len(s.objects)))
	return ApplyBatchResponse{Seq: b.Seq}, nil
}

func (s *Store) rejectLocked(b *types.UpdateBatch, err error) (any, error) {
	s.lastSeq[b.Node] = b.Seq
	metrics.BatchTotal.WithLabelValues("rejected").Inc()
	s.logger.Warn("batch rejected", "node", b.Node, "seq", b.Seq, "error", err)
	return nil, &BatchRejectedError{Seq: b.Seq, Err: err}
}

// removes the object, its name binding and all lock state for it
// waiters are woken with ErrObjectNotFound
func (s *Store) deleteLocked(oid types.ObjectID) {
	rec, exists := s.objects[oid]
	if !exists {
		return
	}
	if rec.name != "" {
		delete(s.names, rec.name)
	}
	delete(s.objects, oid)

	le, exists := s.locks[oid]
	if !exists {
		return
	}
	for n := range le.holders {
		delete(le.holders, n)
		s.untrackLocked(n, oid)
		s.notifier.Released(n, oid, types.ModeNone)
	}
	s.failWaitersLocked(oid, le, types.ErrObjectNotFound)
	delete(s.locks, oid)
}
