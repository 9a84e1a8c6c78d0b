package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pixperk/cohere/pkg/callback"
	"github.com/pixperk/cohere/pkg/queue"
	"github.com/pixperk/cohere/pkg/scheduler"
	"github.com/pixperk/cohere/pkg/store"
	"github.com/pixperk/cohere/pkg/types"
	"github.com/stretchr/testify/require"
)

// in-process store with nodes attached directly, no network
type cluster struct {
	t     *testing.T
	store *store.Store
	pool  *scheduler.Pool
	disp  *callback.Dispatcher

	mu    sync.Mutex
	nodes map[types.NodeID]*testNode
}

type testNode struct {
	id     types.NodeID
	cache  *Cache
	queue  *queue.Queue
	sender *batchSender
	cancel context.CancelFunc
}

func newCluster(t *testing.T) *cluster {
	c := &cluster{
		t:     t,
		store: store.New(nil),
		pool:  scheduler.NewPool(64, nil),
		nodes: make(map[types.NodeID]*testNode),
	}
	c.disp = callback.NewDispatcher(callback.Config{Timeout: 5 * time.Second}, c, c.pool, func(n types.NodeID) {
		c.store.ReleaseAll(n)
	}, nil)
	c.store.SetNotifier(c.disp)

	t.Cleanup(func() {
		c.mu.Lock()
		for _, n := range c.nodes {
			n.cancel()
			n.queue.Close()
		}
		c.mu.Unlock()
		c.pool.Shutdown(context.Background())
	})
	return c
}

// routes callbacks to the node's cache
func (c *cluster) SendCallback(ctx context.Context, node types.NodeID, oid types.ObjectID, target types.AccessMode, epoch uint64) error {
	c.mu.Lock()
	n, ok := c.nodes[node]
	c.mu.Unlock()
	if !ok {
		return types.ErrNoSession
	}
	return n.cache.OnCallback(ctx, oid, target, epoch)
}

func (c *cluster) addNode(id types.NodeID, policy RetentionPolicy) *testNode {
	sender := &batchSender{store: c.store}
	q, err := queue.Open(context.Background(), id, nil, sender, queue.Config{
		MaxPending:     64,
		AckTimeout:     time.Second,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}, nil)
	require.NoError(c.t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go q.Run(ctx)

	n := &testNode{
		id:     id,
		queue:  q,
		sender: sender,
		cancel: cancel,
		cache: New(&storeRemote{node: id, store: c.store}, q, Options{
			Policy:    policy,
			Scheduler: c.pool,
		}),
	}
	c.mu.Lock()
	c.nodes[id] = n
	c.mu.Unlock()
	return n
}

// Remote over the store, doing what the server does for each call
type storeRemote struct {
	node  types.NodeID
	store *store.Store
}

func toGrant(g store.Grant) Grant {
	return Grant{Mode: g.Mode, Epoch: g.Epoch, Data: g.Data}
}

func (r *storeRemote) Acquire(ctx context.Context, oid types.ObjectID, mode types.AccessMode) (Grant, error) {
	g, err := r.store.Acquire(ctx, r.node, oid, mode)
	return toGrant(g), err
}

func (r *storeRemote) Downgrade(ctx context.Context, oid types.ObjectID, target types.AccessMode, epoch uint64) error {
	return r.store.Downgrade(r.node, oid, target, epoch)
}

func (r *storeRemote) Create(ctx context.Context, name string) (types.ObjectID, Grant, error) {
	res, err := r.store.Apply(types.CreateObjectCmd{Node: r.node, Name: name})
	if err != nil {
		return types.InvalidObjectID, Grant{}, err
	}
	oid := res.(store.CreateObjectResponse).ID
	g, err := r.store.Acquire(ctx, r.node, oid, types.ModeWrite)
	return oid, toGrant(g), err
}

func (r *storeRemote) Lookup(ctx context.Context, name string) (types.ObjectID, error) {
	return r.store.Lookup(r.node, name)
}

// queue sender over the store; close gate to hold deliveries back
type batchSender struct {
	store *store.Store

	mu   sync.Mutex
	gate chan struct{}
}

func (s *batchSender) hold() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = make(chan struct{})
}

func (s *batchSender) resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate != nil {
		close(s.gate)
		s.gate = nil
	}
}

func (s *batchSender) Apply(ctx context.Context, b *types.UpdateBatch) error {
	s.mu.Lock()
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	_, err := s.store.Apply(types.ApplyBatchCmd{Batch: b})
	return err
}

func (s *batchSender) Status(ctx context.Context, node types.NodeID) (uint64, error) {
	return s.store.Status(node), nil
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// creates and commits an object, waiting until the store has it
func (n *testNode) create(t *testing.T, name string, data string) types.ObjectID {
	ctx := testCtx(t)
	txn := n.cache.Begin()
	oid, err := txn.Create(ctx, name, []byte(data))
	require.NoError(t, err)
	require.NoError(t, txn.Commit(ctx))
	require.NoError(t, n.queue.Flush(ctx))
	return oid
}

func (n *testNode) write(t *testing.T, oid types.ObjectID, data string) {
	ctx := testCtx(t)
	txn := n.cache.Begin()
	require.NoError(t, txn.Write(ctx, oid, []byte(data)))
	require.NoError(t, txn.Commit(ctx))
}

func (n *testNode) read(t *testing.T, oid types.ObjectID) string {
	ctx := testCtx(t)
	txn := n.cache.Begin()
	defer txn.Abort()
	data, err := txn.Read(ctx, oid)
	require.NoError(t, err)
	return string(data)
}
