package types

import (
	"slices"
)

// one commit's worth of writes and deletes from a single node
// Seq is strictly increasing and gapless per node, starting at 1
type UpdateBatch struct {
	Node    NodeID
	Seq     uint64
	Writes  map[ObjectID][]byte
	Deletes []ObjectID
}

// returns the ids touched by the batch in ascending order
func (b *UpdateBatch) Objects() []ObjectID {
	ids := make([]ObjectID, 0, len(b.Writes)+len(b.Deletes))
	for id := range b.Writes {
		ids = append(ids, id)
	}
	ids = append(ids, b.Deletes...)
	slices.Sort(ids)
	return slices.Compact(ids)
}

func (b *UpdateBatch) Empty() bool {
	return len(b.Writes) == 0 && len(b.Deletes) == 0
}

// payload size, used for backlog accounting
func (b *UpdateBatch) Size() int {
	n := 8 * len(b.Deletes)
	for _, data := range b.Writes {
		n += 8 + len(data)
	}
	return n
}
