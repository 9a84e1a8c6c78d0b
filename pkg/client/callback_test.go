package client

import (
	"context"
	"testing"

	"github.com/hashicorp/go-hclog"
	pb "github.com/pixperk/cohere/api/v1"
	"github.com/pixperk/cohere/pkg/scheduler"
	"github.com/pixperk/cohere/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCallbackRefusedWithoutCapacity(t *testing.T) {
	pool := scheduler.NewPool(1, nil)
	defer pool.Shutdown(context.Background())

	//occupy the only worker
	started := make(chan struct{})
	pool.AddTask(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
	})
	<-started

	svc := &callbackService{c: &Client{sched: pool, logger: hclog.NewNullLogger()}}
	_, err := svc.Callback(context.Background(), &pb.CallbackRequest{
		ObjectId:   1,
		TargetMode: types.ModeNone.ToProto(),
		Epoch:      1,
	})
	require.Error(t, err)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

func TestCallbackRejectsWriteTarget(t *testing.T) {
	svc := &callbackService{c: &Client{logger: hclog.NewNullLogger()}}
	_, err := svc.Callback(context.Background(), &pb.CallbackRequest{
		ObjectId:   1,
		TargetMode: pb.AccessMode_ACCESS_MODE_WRITE,
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
