package client

import (
	"context"
	"time"

	pb "github.com/pixperk/cohere/api/v1"
	"github.com/pixperk/cohere/pkg/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// bound for handling one callback, including the flush it waits for
const callbackHandleTimeout = time.Minute

// receives release requests from the store
// the request is acknowledged on receipt; the release itself is reported by
// a downgrade once local transactions and pending batches are done
type callbackService struct {
	pb.UnimplementedCallbackServer
	c *Client
}

func (s *callbackService) Callback(ctx context.Context, req *pb.CallbackRequest) (*pb.CallbackAck, error) {
	oid := types.ObjectID(req.ObjectId)
	target := types.ModeFromProto(req.TargetMode)
	if target == types.ModeWrite || !target.Valid() {
		return nil, status.Error(codes.InvalidArgument, types.ErrInvalidMode.Error())
	}

	//no free worker: the store asks again instead of queueing goroutines here
	r, err := s.c.sched.ReserveTask(func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, callbackHandleTimeout)
		defer cancel()
		if err := s.c.cache.OnCallback(ctx, oid, target, req.Epoch); err != nil {
			s.c.logger.Warn("callback not completed", "object", oid, "target", target, "error", err)
		}
	})
	if err != nil {
		s.c.logger.Debug("callback refused, no capacity", "object", oid, "target", target)
		return nil, status.Error(codes.ResourceExhausted, types.ErrNodeBusy.Error())
	}
	r.Run()
	return &pb.CallbackAck{}, nil
}
