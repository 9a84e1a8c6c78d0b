package queue

import (
	"sync"

	"github.com/pixperk/cohere/pkg/types"
)

// in-memory journal for nodes without a durable directory
// batches do not survive a restart
type MemoryJournal struct {
	mu      sync.Mutex
	batches []*types.UpdateBatch
}

func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{}
}

func (m *MemoryJournal) Append(b *types.UpdateBatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, b)
	return nil
}

func (m *MemoryJournal) Truncate(seq uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := 0
	for i < len(m.batches) && m.batches[i].Seq <= seq {
		i++
	}
	m.batches = m.batches[i:]
	return nil
}

func (m *MemoryJournal) Load() ([]*types.UpdateBatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*types.UpdateBatch(nil), m.batches...), nil
}
