package store

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/pixperk/cohere/pkg/metrics"
	"github.com/pixperk/cohere/pkg/types"
)

// receives lock manager events that need a node's cooperation
// called with the store mutex held, implementations must not call back into the store
type Notifier interface {
	// node must give oid up to target; epoch is the grant the store believes it holds
	RequestRelease(node types.NodeID, oid types.ObjectID, target types.AccessMode, epoch uint64)
	// node now holds mode on oid
	Released(node types.NodeID, oid types.ObjectID, mode types.AccessMode)
	// drop any outstanding request for (node, oid) so the next conflict re-issues it
	Forget(node types.NodeID, oid types.ObjectID)
	// all of node's modes were revoked
	NodeGone(node types.NodeID)
}

type nopNotifier struct{}

func (nopNotifier) RequestRelease(types.NodeID, types.ObjectID, types.AccessMode, uint64) {}
func (nopNotifier) Released(types.NodeID, types.ObjectID, types.AccessMode)               {}
func (nopNotifier) Forget(types.NodeID, types.ObjectID)                                   {}
func (nopNotifier) NodeGone(types.NodeID)                                                 {}

type record struct {
	data    []byte
	name    string
	pending bool
	creator types.NodeID
}

// authoritative object store
// critical :
// - object ids are allocated once and never reused
// - names are bound to at most one object and freed on delete
// - lock state, batch application and name bindings change only under mu
// - a node's batches apply in gapless sequence order, each at most once
type Store struct {
	mu sync.Mutex

	objects map[types.ObjectID]*record // object ID -> record
	names   map[string]types.ObjectID  // name -> object ID
	lastSeq map[types.NodeID]uint64    // node -> last applied batch sequence

	locks map[types.ObjectID]*lockEntry             // object ID -> holders and waiters
	held  map[types.NodeID]map[types.ObjectID]struct{} // node -> objects it holds or waits on

	nextID uint64 // next object ID to assign
	epoch  uint64 // grant counter, increases on every grant

	notifier Notifier
	logger   hclog.Logger
}

func New(logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{
		objects:  make(map[types.ObjectID]*record),
		names:    make(map[string]types.ObjectID),
		lastSeq:  make(map[types.NodeID]uint64),
		locks:    make(map[types.ObjectID]*lockEntry),
		held:     make(map[types.NodeID]map[types.ObjectID]struct{}),
		nextID:   1, //start object IDs from 1
		notifier: nopNotifier{},
		logger:   logger.Named("store"),
	}
}

// installs the callback dispatcher; must be called before the store is shared
func (s *Store) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n == nil {
		n = nopNotifier{}
	}
	s.notifier = n
}

// applies a replicated command and returns the result or error
func (s *Store) Apply(cmd types.Command) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch c := cmd.(type) {
	case types.CreateObjectCmd:
		return s.applyCreate(c)
	case types.ApplyBatchCmd:
		return s.applyBatch(c.Batch)
	default:
		return nil, fmt.Errorf("unknown command type: %T", cmd)
	}
}

// returned when an object is created
type CreateObjectResponse struct {
	ID types.ObjectID
}

func (s *Store) applyCreate(cmd types.CreateObjectCmd) (any, error) {
	if cmd.Name != "" {
		if _, bound := s.names[cmd.Name]; bound {
			return nil, types.ErrNameAlreadyBound
		}
	}

	id := types.ObjectID(s.nextID)
	s.nextID++

	s.objects[id] = &record{
		name:    cmd.Name,
		pending: true,
		creator: cmd.Node,
	}
	if cmd.Name != "" {
		s.names[cmd.Name] = id
	}
	metrics.Objects.Set(float64(len(s.objects)))

	return CreateObjectResponse{ID: id}, nil
}

// pending creates are only visible to the node that created them
func (s *Store) visibleLocked(oid types.ObjectID, node types.NodeID) (*record, bool) {
	rec, exists := s.objects[oid]
	if !exists {
		return nil, false
	}
	if rec.pending && rec.creator != node {
		return nil, false
	}
	return rec, true
}

// resolves a name binding
func (s *Store) Lookup(node types.NodeID, name string) (types.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, bound := s.names[name]
	if !bound {
		return types.InvalidObjectID, types.ErrObjectNotFound
	}
	if _, ok := s.visibleLocked(id, node); !ok {
		return types.InvalidObjectID, types.ErrObjectNotFound
	}
	return id, nil
}

// returns a copy of the committed record
func (s *Store) Get(oid types.ObjectID) (types.ObjectRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.objects[oid]
	if !exists {
		return types.ObjectRecord{}, false
	}
	return types.ObjectRecord{
		ID:      oid,
		Data:    clone(rec.data),
		Name:    rec.name,
		Pending: rec.pending,
		Creator: rec.creator,
	}, true
}

// last batch sequence applied for node, 0 if none
func (s *Store) Status(node types.NodeID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeq[node]
}

// current store stats
type Stats struct {
	Objects int
	Names   int
	Locks   int
	Waiters int
	Nodes   int
	NextID  uint64
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	waiters := 0
	for _, le := range s.locks {
		waiters += len(le.waiters)
	}
	return Stats{
		Objects: len(s.objects),
		Names:   len(s.names),
		Locks:   len(s.locks),
		Waiters: waiters,
		Nodes:   len(s.lastSeq),
		NextID:  s.nextID,
	}
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
