package server

import (
	"context"

	"fmt"

	pb "github.com/pixperk/cohere/api/v1"
	"github.com/pixperk/cohere/pkg/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// sends callbacks over the node's session connection
type callbackSender struct {
	sessions *sessions
}

func (c *callbackSender) SendCallback(ctx context.Context, node types.NodeID, oid types.ObjectID, target types.AccessMode, epoch uint64) error {
	sess, ok := c.sessions.get(node)
	if !ok {
		return types.ErrNoSession
	}

	_, err := sess.callback.Callback(ctx, &pb.CallbackRequest{
		ObjectId:   uint64(oid),
		TargetMode: target.ToProto(),
		Epoch:      epoch,
	})
	if status.Code(err) == codes.ResourceExhausted {
		return fmt.Errorf("%w: %s", types.ErrNodeBusy, node)
	}
	return err
}
