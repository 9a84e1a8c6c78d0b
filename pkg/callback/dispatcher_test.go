package callback

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pixperk/cohere/pkg/scheduler"
	"github.com/pixperk/cohere/pkg/store"
	"github.com/pixperk/cohere/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	node   types.NodeID
	oid    types.ObjectID
	target types.AccessMode
	epoch  uint64
}

// records callbacks and optionally answers them
type fakeSender struct {
	mu     sync.Mutex
	sent   []sent
	answer func(node types.NodeID, oid types.ObjectID, target types.AccessMode, epoch uint64)
	busy   int // number of sends refused before one is accepted
}

func (f *fakeSender) SendCallback(ctx context.Context, node types.NodeID, oid types.ObjectID, target types.AccessMode, epoch uint64) error {
	f.mu.Lock()
	f.sent = append(f.sent, sent{node, oid, target, epoch})
	if f.busy > 0 {
		f.busy--
		f.mu.Unlock()
		return fmt.Errorf("%w: %s", types.ErrNodeBusy, node)
	}
	answer := f.answer
	f.mu.Unlock()
	if answer != nil {
		answer(node, oid, target, epoch)
	}
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newPool(t *testing.T) *scheduler.Pool {
	p := scheduler.NewPool(8, nil)
	t.Cleanup(func() { p.Shutdown(context.Background()) })
	return p
}

// creates and commits an object owned by node
func createObject(t *testing.T, s *store.Store, node types.NodeID, seq uint64) types.ObjectID {
	res, err := s.Apply(types.CreateObjectCmd{Node: node})
	require.NoError(t, err)
	oid := res.(store.CreateObjectResponse).ID
	_, err = s.Apply(types.ApplyBatchCmd{Batch: &types.UpdateBatch{
		Node:   node,
		Seq:    seq,
		Writes: map[types.ObjectID][]byte{oid: []byte("v0")},
	}})
	require.NoError(t, err)
	return oid
}

func TestDuplicateRequestSentOnce(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(Config{Timeout: time.Minute}, sender, newPool(t), nil, nil)

	d.RequestRelease("n1", 7, types.ModeRead, 3)
	d.RequestRelease("n1", 7, types.ModeRead, 3)
	require.Eventually(t, func() bool { return sender.count() == 1 }, time.Second, time.Millisecond)

	//a stricter target for the same conflict is sent again
	d.RequestRelease("n1", 7, types.ModeNone, 3)
	require.Eventually(t, func() bool { return sender.count() == 2 }, time.Second, time.Millisecond)

	pending := d.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, types.ModeNone, pending[0].Target)
}

func TestReleasedClearsPending(t *testing.T) {
	d := NewDispatcher(Config{Timeout: time.Minute}, &fakeSender{}, newPool(t), nil, nil)

	d.RequestRelease("n1", 1, types.ModeNone, 1)
	d.RequestRelease("n2", 1, types.ModeRead, 2)

	//downgrading to read does not satisfy a release to none
	d.Released("n1", 1, types.ModeRead)
	assert.Len(t, d.Pending(), 2)

	d.Released("n1", 1, types.ModeNone)
	d.Released("n2", 1, types.ModeRead)
	assert.Empty(t, d.Pending())
}

func TestNodeGoneDropsAllForNode(t *testing.T) {
	d := NewDispatcher(Config{Timeout: time.Minute}, &fakeSender{}, newPool(t), nil, nil)

	d.RequestRelease("n1", 1, types.ModeNone, 1)
	d.RequestRelease("n1", 2, types.ModeNone, 2)
	d.RequestRelease("n2", 3, types.ModeNone, 3)
	d.NodeGone("n1")

	pending := d.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, types.NodeID("n2"), pending[0].Node)
}

// TestAnsweredCallbackGrantsWaiter tests the full conflict path through the store
func TestAnsweredCallbackGrantsWaiter(t *testing.T) {
	s := store.New(nil)
	sender := &fakeSender{}
	d := NewDispatcher(Config{Timeout: time.Minute}, sender, newPool(t), func(n types.NodeID) { s.ReleaseAll(n) }, nil)
	s.SetNotifier(d)
	sender.answer = func(node types.NodeID, oid types.ObjectID, target types.AccessMode, epoch uint64) {
		assert.NoError(t, s.Downgrade(node, oid, target, epoch))
	}

	oid := createObject(t, s, "holder", 1)
	_, err := s.Acquire(context.Background(), "reader", oid, types.ModeRead)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	g, err := s.Acquire(ctx, "writer", oid, types.ModeWrite)
	require.NoError(t, err)
	assert.Equal(t, types.ModeWrite, g.Mode)

	assert.Equal(t, map[types.NodeID]types.AccessMode{"writer": types.ModeWrite}, s.Holders(oid))
	assert.Empty(t, d.Pending())
}

// TestUnansweredCallbackRevokesNode tests that a silent holder cannot stall others
func TestUnansweredCallbackRevokesNode(t *testing.T) {
	s := store.New(nil)
	sender := &fakeSender{}
	var revoked []types.NodeID
	var mu sync.Mutex
	d := NewDispatcher(Config{Timeout: 20 * time.Millisecond}, sender, newPool(t), func(n types.NodeID) {
		mu.Lock()
		revoked = append(revoked, n)
		mu.Unlock()
		s.ReleaseAll(n)
	}, nil)
	s.SetNotifier(d)
	d.Start()
	defer d.Stop()

	oid := createObject(t, s, "silent", 1)
	_, err := s.Acquire(context.Background(), "silent", oid, types.ModeWrite)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	g, err := s.Acquire(ctx, "other", oid, types.ModeRead)
	require.NoError(t, err)
	assert.Equal(t, types.ModeRead, g.Mode)

	mu.Lock()
	assert.Equal(t, []types.NodeID{"silent"}, revoked)
	mu.Unlock()
	assert.Empty(t, s.Holders(oid)["silent"])
}

func TestCheckTimeoutsLeavesFreshCallbacks(t *testing.T) {
	d := NewDispatcher(Config{Timeout: time.Hour}, &fakeSender{}, newPool(t), func(types.NodeID) {
		t.Fatal("fresh callback must not time out")
	}, nil)

	d.RequestRelease("n1", 1, types.ModeNone, 1)
	assert.Empty(t, d.CheckTimeouts())
	assert.Len(t, d.Pending(), 1)
}

func TestBusyNodeAskedAgain(t *testing.T) {
	sender := &fakeSender{busy: 2}
	d := NewDispatcher(Config{Timeout: time.Minute}, sender, newPool(t), nil, nil)

	d.RequestRelease("n1", 7, types.ModeNone, 1)
	require.Eventually(t, func() bool { return sender.count() == 3 }, 2*time.Second, time.Millisecond)

	//accepted, nothing more is sent while the node works on it
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 3, sender.count())
	assert.Len(t, d.Pending(), 1)
}

func TestBusyRetryStopsOnceReleased(t *testing.T) {
	sender := &fakeSender{busy: 1000}
	d := NewDispatcher(Config{Timeout: time.Minute}, sender, newPool(t), nil, nil)

	d.RequestRelease("n1", 7, types.ModeNone, 1)
	require.Eventually(t, func() bool { return sender.count() >= 1 }, time.Second, time.Millisecond)

	d.Released("n1", 7, types.ModeNone)
	time.Sleep(busyRetryMax + 100*time.Millisecond)
	n := sender.count()
	time.Sleep(busyRetryMax + 100*time.Millisecond)
	assert.Equal(t, n, sender.count())
}
