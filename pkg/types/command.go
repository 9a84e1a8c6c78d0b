package types

import (
	"fmt"
	"slices"

	pb "github.com/pixperk/cohere/api/v1"
)

// type of store command replicated through the commit log
type CommandType uint32

const (
	CommandTypeCreateObject CommandType = iota + 1
	CommandTypeApplyBatch
)

// interface all store commands implement
type Command interface {
	Type() CommandType
	ToProto() (*pb.Command, error)
}

// allocates an object id and binds the optional name
type CreateObjectCmd struct {
	Node NodeID
	Name string
}

func (c CreateObjectCmd) Type() CommandType { return CommandTypeCreateObject }

func (c CreateObjectCmd) ToProto() (*pb.Command, error) {
	return &pb.Command{
		Type:   pb.CommandType(c.Type()),
		NodeId: string(c.Node),
		Name:   c.Name,
	}, nil
}

// applies one node's update batch atomically
type ApplyBatchCmd struct {
	Batch *UpdateBatch
}

func (c ApplyBatchCmd) Type() CommandType { return CommandTypeApplyBatch }

func (c ApplyBatchCmd) ToProto() (*pb.Command, error) {
	if c.Batch == nil {
		return nil, fmt.Errorf("apply batch command without batch")
	}
	return &pb.Command{
		Type:   pb.CommandType(c.Type()),
		NodeId: string(c.Batch.Node),
		Batch:  BatchToProto(c.Batch),
	}, nil
}

// converts the raft envelope back into a command
func FromProtoCommand(w *pb.Command) (Command, error) {
	switch CommandType(w.GetType()) {
	case CommandTypeCreateObject:
		return CreateObjectCmd{Node: NodeID(w.NodeId), Name: w.Name}, nil
	case CommandTypeApplyBatch:
		if w.Batch == nil {
			return nil, fmt.Errorf("apply batch command without batch")
		}
		return ApplyBatchCmd{Batch: BatchFromProto(w.Batch)}, nil
	default:
		return nil, fmt.Errorf("unknown command type: %d", w.Type)
	}
}

// writes are emitted in ascending id order so encodings are deterministic
func BatchToProto(b *UpdateBatch) *pb.UpdateBatch {
	out := &pb.UpdateBatch{
		NodeId: string(b.Node),
		Seq:    b.Seq,
	}
	ids := make([]ObjectID, 0, len(b.Writes))
	for id := range b.Writes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		out.Writes = append(out.Writes, &pb.ObjectWrite{ObjectId: uint64(id), Data: b.Writes[id]})
	}
	for _, id := range b.Deletes {
		out.Deletes = append(out.Deletes, uint64(id))
	}
	return out
}

func BatchFromProto(p *pb.UpdateBatch) *UpdateBatch {
	b := &UpdateBatch{
		Node:   NodeID(p.NodeId),
		Seq:    p.Seq,
		Writes: make(map[ObjectID][]byte, len(p.Writes)),
	}
	for _, w := range p.Writes {
		data := w.GetData()
		if data == nil {
			//an empty payload is a write of zero bytes, not a missing one
			data = []byte{}
		}
		b.Writes[ObjectID(w.ObjectId)] = data
	}
	for _, id := range p.Deletes {
		b.Deletes = append(b.Deletes, ObjectID(id))
	}
	return b
}
