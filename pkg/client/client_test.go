package client

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	pb "github.com/pixperk/cohere/api/v1"
	"github.com/pixperk/cohere/pkg/queue"
	"github.com/pixperk/cohere/pkg/raft"
	"github.com/pixperk/cohere/pkg/scheduler"
	"github.com/pixperk/cohere/pkg/server"
	"github.com/pixperk/cohere/pkg/store"
	"github.com/pixperk/cohere/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// a store server on loopback ports
type testServer struct {
	t         *testing.T
	store     *store.Store
	reqAddr   string
	queueAddr string

	dropApplies atomic.Bool // fail batches before they reach the store
	loseAck     atomic.Bool // apply the next batch, then report a transport failure

	mu      sync.Mutex
	applied map[types.NodeID]map[uint64]int // non-duplicate applies per sequence number
}

func startServer(t *testing.T) *testServer {
	t.Helper()

	st := store.New(nil)
	node, err := raft.NewNode(&raft.Config{
		ID:      "server-1",
		DataDir: t.TempDir(),
	}, st)
	require.NoError(t, err)
	require.NoError(t, node.WaitForLeader(10*time.Second))

	sched := scheduler.NewPool(64, nil)
	srv := server.NewServer(server.Config{
		SessionTTL:        time.Second,
		HeartbeatInterval: 50 * time.Millisecond,
		CallbackTimeout:   5 * time.Second,
	}, node, sched, nil)
	srv.Start()

	ts := &testServer{
		t:       t,
		store:   st,
		applied: make(map[types.NodeID]map[uint64]int),
	}

	reqLis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	queueLis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ts.reqAddr = reqLis.Addr().String()
	ts.queueAddr = queueLis.Addr().String()

	reqServer := grpc.NewServer()
	pb.RegisterStoreServer(reqServer, srv)
	queueServer := grpc.NewServer(grpc.UnaryInterceptor(ts.intercept))
	pb.RegisterUpdateQueueServer(queueServer, srv.QueueService())

	go reqServer.Serve(reqLis)
	go queueServer.Serve(queueLis)

	t.Cleanup(func() {
		srv.Stop()
		reqServer.Stop()
		queueServer.Stop()
		sched.Shutdown(context.Background())
		node.Shutdown()
	})
	return ts
}

func (ts *testServer) intercept(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if info.FullMethod != pb.UpdateQueue_Apply_FullMethodName {
		return handler(ctx, req)
	}
	if ts.dropApplies.Load() {
		return nil, status.Error(codes.Unavailable, "injected transport failure")
	}

	resp, err := handler(ctx, req)
	if err == nil && !resp.(*pb.UpdateAck).Duplicate {
		b := req.(*pb.UpdateBatch)
		ts.mu.Lock()
		node := types.NodeID(b.NodeId)
		if ts.applied[node] == nil {
			ts.applied[node] = make(map[uint64]int)
		}
		ts.applied[node][b.Seq]++
		ts.mu.Unlock()
	}
	if err == nil && ts.loseAck.CompareAndSwap(true, false) {
		return nil, status.Error(codes.Unavailable, "injected lost ack")
	}
	return resp, err
}

func (ts *testServer) appliedCount(node types.NodeID, seq uint64) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.applied[node][seq]
}

func (ts *testServer) startNode(t *testing.T, id types.NodeID, dataDir string) *Client {
	t.Helper()

	c, err := NewClient(Config{
		NodeID:         id,
		ServerAddr:     ts.reqAddr,
		QueueAddr:      ts.queueAddr,
		CallbackListen: "127.0.0.1:0",
		DataDir:        dataDir,
		Queue: queue.Config{
			AckTimeout:     time.Second,
			InitialBackoff: 10 * time.Millisecond,
			MaxBackoff:     50 * time.Millisecond,
		},
		MaxReconnect: 100 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, c.Start(ctx))
	return c
}

func stop(t *testing.T, c *Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, c.Stop(ctx))
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestNodesShareCommittedWrites(t *testing.T) {
	ts := startServer(t)
	a := ts.startNode(t, "node-a", t.TempDir())
	defer stop(t, a)
	b := ts.startNode(t, "node-b", t.TempDir())
	defer stop(t, b)
	ctx := testCtx(t)

	txn := a.Begin()
	oid, err := txn.Create(ctx, "alice", []byte("v1"))
	require.NoError(t, err)
	require.NoError(t, txn.Commit(ctx))
	require.NoError(t, a.Queue().Flush(ctx))

	//b's read calls a back; a flushes before it downgrades
	txn = b.Begin()
	found, err := txn.Lookup(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, oid, found)
	data, err := txn.Read(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), data)
	require.NoError(t, txn.Commit(ctx))

	txn = a.Begin()
	require.NoError(t, txn.Write(ctx, oid, []byte("v2")))
	require.NoError(t, txn.Commit(ctx))

	txn = b.Begin()
	data, err = txn.Read(ctx, oid)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
	require.NoError(t, txn.Commit(ctx))

	assert.Equal(t, types.ModeRead, a.Cache().Mode(oid))
	assert.Equal(t, types.ModeRead, b.Cache().Mode(oid))
}

func TestPendingCreateHiddenFromOtherNodes(t *testing.T) {
	ts := startServer(t)
	a := ts.startNode(t, "node-a", t.TempDir())
	defer stop(t, a)
	b := ts.startNode(t, "node-b", t.TempDir())
	defer stop(t, b)
	ctx := testCtx(t)

	ts.dropApplies.Store(true)
	txn := a.Begin()
	_, err := txn.Create(ctx, "draft", []byte("x"))
	require.NoError(t, err)
	require.NoError(t, txn.Commit(ctx))

	_, err = b.Begin().Lookup(ctx, "draft")
	assert.ErrorIs(t, err, types.ErrObjectNotFound)

	ts.dropApplies.Store(false)
	require.NoError(t, a.Queue().Flush(ctx))

	_, err = b.Begin().Lookup(ctx, "draft")
	assert.NoError(t, err)
}

func TestLostAckAppliedOnce(t *testing.T) {
	ts := startServer(t)
	a := ts.startNode(t, "node-a", t.TempDir())
	defer stop(t, a)
	ctx := testCtx(t)

	ts.loseAck.Store(true)
	txn := a.Begin()
	oid, err := txn.Create(ctx, "counter", []byte("1"))
	require.NoError(t, err)
	require.NoError(t, txn.Commit(ctx))
	require.NoError(t, a.Queue().Flush(ctx))

	assert.Equal(t, 1, ts.appliedCount("node-a", 1))
	assert.Equal(t, uint64(1), ts.store.Status("node-a"))
	rec, ok := ts.store.Get(oid)
	require.True(t, ok)
	assert.Equal(t, []byte("1"), rec.Data)
}

func TestRestartReplaysUnacknowledgedBatch(t *testing.T) {
	ts := startServer(t)
	dir := t.TempDir()
	ctx := testCtx(t)

	a := ts.startNode(t, "node-a", dir)
	txn := a.Begin()
	oid, err := txn.Create(ctx, "counter", []byte("1"))
	require.NoError(t, err)
	require.NoError(t, txn.Commit(ctx))
	require.NoError(t, a.Queue().Flush(ctx))

	//the second batch never reaches the store before the node goes away
	ts.dropApplies.Store(true)
	txn = a.Begin()
	require.NoError(t, txn.Write(ctx, oid, []byte("2")))
	require.NoError(t, txn.Commit(ctx))
	stop(t, a)

	seq, err := QueryStatus(ctx, ts.queueAddr, "node-a")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)
	rec, _ := ts.store.Get(oid)
	assert.Equal(t, []byte("1"), rec.Data)

	ts.dropApplies.Store(false)
	a = ts.startNode(t, "node-a", dir)
	defer stop(t, a)
	require.NoError(t, a.Queue().Flush(ctx))

	assert.Equal(t, uint64(2), ts.store.Status("node-a"))
	assert.Equal(t, 1, ts.appliedCount("node-a", 2))
	rec, _ = ts.store.Get(oid)
	assert.Equal(t, []byte("2"), rec.Data)

	//sequence numbers continue after the replayed batch
	txn = a.Begin()
	require.NoError(t, txn.Write(ctx, oid, []byte("3")))
	require.NoError(t, txn.Commit(ctx))
	require.NoError(t, a.Queue().Flush(ctx))
	assert.Equal(t, uint64(3), ts.store.Status("node-a"))
}

func TestStoppedNodeReleasesModes(t *testing.T) {
	ts := startServer(t)
	a := ts.startNode(t, "node-a", t.TempDir())
	b := ts.startNode(t, "node-b", t.TempDir())
	defer stop(t, b)
	ctx := testCtx(t)

	txn := a.Begin()
	oid, err := txn.Create(ctx, "held", []byte("a"))
	require.NoError(t, err)
	require.NoError(t, txn.Commit(ctx))
	require.NoError(t, a.Queue().Flush(ctx))
	stop(t, a)

	require.Eventually(t, func() bool {
		_, held := ts.store.Holders(oid)["node-a"]
		return !held
	}, 5*time.Second, 10*time.Millisecond)

	txn = b.Begin()
	require.NoError(t, txn.Write(ctx, oid, []byte("b")))
	require.NoError(t, txn.Commit(ctx))
}
