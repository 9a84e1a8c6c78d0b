package server

import (
	"context"

	pb "github.com/pixperk/cohere/api/v1"
	"github.com/pixperk/cohere/pkg/store"
	"github.com/pixperk/cohere/pkg/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// update-queue service, served on its own port
// batches are accepted without a live session so a restarted node can replay
// before it registers again
type QueueService struct {
	pb.UnimplementedUpdateQueueServer
	s *Server
}

func (s *Server) QueueService() *QueueService {
	return &QueueService{s: s}
}

func (q *QueueService) Apply(ctx context.Context, req *pb.UpdateBatch) (*pb.UpdateAck, error) {
	if req.NodeId == "" {
		return nil, status.Error(codes.InvalidArgument, "node_id required")
	}
	if req.Seq == 0 {
		return nil, status.Error(codes.InvalidArgument, "seq must be greater than 0")
	}
	if !q.s.node.IsLeader() {
		return nil, notLeaderError()
	}

	result, err := q.s.node.Apply(types.ApplyBatchCmd{Batch: types.BatchFromProto(req)})
	if err != nil {
		return nil, toGRPCError(err)
	}

	resp := result.(store.ApplyBatchResponse)
	return &pb.UpdateAck{
		Seq:       resp.Seq,
		Duplicate: resp.Duplicate,
	}, nil
}

func (q *QueueService) Status(ctx context.Context, req *pb.StatusQuery) (*pb.StatusReply, error) {
	if req.NodeId == "" {
		return nil, status.Error(codes.InvalidArgument, "node_id required")
	}
	return &pb.StatusReply{
		LastAppliedSeq: q.s.store.Status(types.NodeID(req.NodeId)),
	}, nil
}
