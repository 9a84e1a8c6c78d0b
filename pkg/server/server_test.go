package server

import (
	"context"
	"testing"
	"time"

	pb "github.com/pixperk/cohere/api/v1"
	"github.com/pixperk/cohere/pkg/raft"
	"github.com/pixperk/cohere/pkg/scheduler"
	"github.com/pixperk/cohere/pkg/store"
	"github.com/pixperk/cohere/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	node, err := raft.NewNode(&raft.Config{ID: "server-1", DataDir: t.TempDir()}, store.New(nil))
	require.NoError(t, err)
	require.NoError(t, node.WaitForLeader(10*time.Second))

	sched := scheduler.NewPool(16, nil)
	s := NewServer(Config{
		SessionTTL:        time.Minute,
		HeartbeatInterval: time.Second,
		CallbackTimeout:   time.Second,
	}, node, sched, nil)
	s.Start()

	t.Cleanup(func() {
		s.Stop()
		sched.Shutdown(context.Background())
		node.Shutdown()
	})
	return s
}

func TestRequestsNeedSession(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.Create(ctx, &pb.CreateRequest{NodeId: "n1", Name: "a"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = s.Register(ctx, &pb.RegisterRequest{NodeId: "n1"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	resp, err := s.Register(ctx, &pb.RegisterRequest{NodeId: "n1", CallbackAddr: "127.0.0.1:1"})
	require.NoError(t, err)
	assert.Equal(t, int64(60000), resp.SessionTtlMs)

	created, err := s.Create(ctx, &pb.CreateRequest{NodeId: "n1", Name: "a"})
	require.NoError(t, err)
	assert.NotZero(t, created.Epoch)

	_, err = s.Create(ctx, &pb.CreateRequest{NodeId: "n1", Name: "a"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	found, err := s.Lookup(ctx, &pb.LookupRequest{NodeId: "n1", Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, created.ObjectId, found.ObjectId)

	_, err = s.Acquire(ctx, &pb.AcquireRequest{NodeId: "n1", ObjectId: 99, Mode: types.ModeRead.ToProto()})
	assert.Equal(t, codes.NotFound, status.Code(err))

	st := s.NodeStatus("n1")
	assert.True(t, st.Connected)
	assert.Equal(t, "127.0.0.1:1", st.CallbackAddr)
	assert.Equal(t, 1, s.Stats().Sessions)
}

func TestQueueServiceSequencing(t *testing.T) {
	s := newTestServer(t)
	q := s.QueueService()
	ctx := context.Background()

	_, err := s.Register(ctx, &pb.RegisterRequest{NodeId: "n1", CallbackAddr: "127.0.0.1:1"})
	require.NoError(t, err)
	created, err := s.Create(ctx, &pb.CreateRequest{NodeId: "n1", Name: "a"})
	require.NoError(t, err)

	write := func(seq uint64, data string) (*pb.UpdateAck, error) {
		return q.Apply(ctx, &pb.UpdateBatch{
			NodeId: "n1",
			Seq:    seq,
			Writes: []*pb.ObjectWrite{{ObjectId: created.ObjectId, Data: []byte(data)}},
		})
	}

	_, err = write(2, "skip")
	require.Error(t, err)
	st, _ := status.FromError(err)
	assert.Equal(t, codes.FailedPrecondition, st.Code())
	assert.Contains(t, st.Message(), "expected 1")

	ack, err := write(1, "one")
	require.NoError(t, err)
	assert.False(t, ack.Duplicate)

	ack, err = write(1, "one")
	require.NoError(t, err)
	assert.True(t, ack.Duplicate)

	reply, err := q.Status(ctx, &pb.StatusQuery{NodeId: "n1"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), reply.LastAppliedSeq)

	_, err = q.Apply(ctx, &pb.UpdateBatch{NodeId: "n1", Seq: 2, Deletes: []uint64{999}})
	assert.Equal(t, codes.Aborted, status.Code(err))
	reply, err = q.Status(ctx, &pb.StatusQuery{NodeId: "n1"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), reply.LastAppliedSeq, "a rejected batch consumes its sequence number")
}
