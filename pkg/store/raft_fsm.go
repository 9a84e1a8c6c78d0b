package store

import (
	"encoding/json"
	"io"

	"github.com/hashicorp/raft"
	pb "github.com/pixperk/cohere/api/v1"
	"github.com/pixperk/cohere/pkg/metrics"
	"github.com/pixperk/cohere/pkg/types"
	"google.golang.org/protobuf/proto"
)

// adapter to bridge the raft FSM with the store
// only durable state goes through the log: object ids, bytes, names, sequence numbers
// lock state lives and dies with node sessions
type RaftFSM struct {
	store *Store
}

func NewRaftFSM(s *Store) *RaftFSM {
	return &RaftFSM{
		store: s,
	}
}

func (rf *RaftFSM) Apply(log *raft.Log) any {
	//s1 : deserialize the envelope
	var wrapper pb.Command
	if err := proto.Unmarshal(log.Data, &wrapper); err != nil {
		return err
	}

	//s2 : convert to a store command
	cmd, err := types.FromProtoCommand(&wrapper)
	if err != nil {
		return err
	}

	//s3 : apply under the store mutex
	result, err := rf.store.Apply(cmd)
	if err != nil {
		return err
	}

	return result
}

// create a snapshot of the durable store state
func (rf *RaftFSM) Snapshot() (raft.FSMSnapshot, error) {
	rf.store.mu.Lock()
	defer rf.store.mu.Unlock()

	snapshot := &storeSnapshot{
		Objects: make(map[types.ObjectID]*objectSnapshot, len(rf.store.objects)),
		LastSeq: make(map[types.NodeID]uint64, len(rf.store.lastSeq)),
		NextID:  rf.store.nextID,
	}

	//deep copy objects
	for id, rec := range rf.store.objects {
		snapshot.Objects[id] = &objectSnapshot{
			Data:    clone(rec.data),
			Name:    rec.name,
			Pending: rec.pending,
			Creator: rec.creator,
		}
	}

	for node, seq := range rf.store.lastSeq {
		snapshot.LastSeq[node] = seq
	}

	return snapshot, nil
}

// restores store state from a snapshot
// any lock state is dropped and blocked acquires fail
func (rf *RaftFSM) Restore(snapshot io.ReadCloser) error {
	defer snapshot.Close()

	var snap storeSnapshot
	if err := json.NewDecoder(snapshot).Decode(&snap); err != nil {
		return err
	}

	s := rf.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for oid, le := range s.locks {
		s.failWaitersLocked(oid, le, types.ErrStoreUnavailable)
	}
	s.locks = make(map[types.ObjectID]*lockEntry)
	s.held = make(map[types.NodeID]map[types.ObjectID]struct{})

	s.objects = make(map[types.ObjectID]*record, len(snap.Objects))
	s.names = make(map[string]types.ObjectID)
	for id, o := range snap.Objects {
		s.objects[id] = &record{
			data:    o.Data,
			name:    o.Name,
			pending: o.Pending,
			creator: o.Creator,
		}
		if o.Name != "" {
			s.names[o.Name] = id
		}
	}
	s.lastSeq = snap.LastSeq
	if s.lastSeq == nil {
		s.lastSeq = make(map[types.NodeID]uint64)
	}
	s.nextID = snap.NextID
	if s.nextID == 0 {
		s.nextID = 1
	}
	metrics.Objects.Set(float64(len(s.objects)))

	return nil
}

type objectSnapshot struct {
	Data    []byte       `json:"data"`
	Name    string       `json:"name,omitempty"`
	Pending bool         `json:"pending,omitempty"`
	Creator types.NodeID `json:"creator,omitempty"`
}

// point-in-time snapshot of durable store state
type storeSnapshot struct {
	Objects map[types.ObjectID]*objectSnapshot `json:"objects"`
	LastSeq map[types.NodeID]uint64            `json:"last_seq"`
	NextID  uint64                             `json:"next_id"`
}

// persist snapshot to given sink
func (s *storeSnapshot) Persist(sink raft.SnapshotSink) error {
	if err := json.NewEncoder(sink).Encode(s); err != nil {
		sink.Cancel() //fail snapshot on error
		return err
	}
	return sink.Close() //mark snapshot as complete
}

// called when snapshot is no longer needed
func (s *storeSnapshot) Release() {}
