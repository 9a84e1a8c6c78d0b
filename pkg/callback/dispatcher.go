// Package callback asks nodes to give up cached access modes on behalf of
// blocked acquires, and revokes nodes that do not answer in time.
package callback

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/hashicorp/go-hclog"
	"github.com/pixperk/cohere/pkg/metrics"
	"github.com/pixperk/cohere/pkg/scheduler"
	ctime "github.com/pixperk/cohere/pkg/time"
	"github.com/pixperk/cohere/pkg/types"
)

// delivers one callback to a node
// the node acknowledges by downgrading through the store, not by the return value
type Sender interface {
	SendCallback(ctx context.Context, node types.NodeID, oid types.ObjectID, target types.AccessMode, epoch uint64) error
}

// an outstanding callback
type Pending struct {
	Node     types.NodeID
	Object   types.ObjectID
	Target   types.AccessMode
	Epoch    uint64
	IssuedAt time.Duration // on the dispatcher clock
}

type key struct {
	node types.NodeID
	oid  types.ObjectID
}

type Config struct {
	// how long a node may take to answer before it is revoked
	Timeout time.Duration
	// upper bound for a single send attempt
	SendTimeout time.Duration
}

// tracks callbacks from dispatch until the node answers or times out
// implements store.Notifier: every method is called under the store mutex and
// only touches the dispatcher's own state
type Dispatcher struct {
	mu      sync.Mutex
	pending map[key]*Pending

	cfg       Config
	sender    Sender
	sched     scheduler.Scheduler
	clock     *ctime.Clock
	onTimeout func(node types.NodeID)
	logger    hclog.Logger

	checker *scheduler.RecurringHandle
}

// onTimeout is called without any dispatcher lock held, it is expected to end
// the node's session and release everything it holds
func NewDispatcher(cfg Config, sender Sender, sched scheduler.Scheduler, onTimeout func(types.NodeID), logger hclog.Logger) *Dispatcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if cfg.SendTimeout <= 0 || cfg.SendTimeout > cfg.Timeout {
		cfg.SendTimeout = cfg.Timeout
	}
	return &Dispatcher{
		pending:   make(map[key]*Pending),
		cfg:       cfg,
		sender:    sender,
		sched:     sched,
		clock:     ctime.NewClock(),
		onTimeout: onTimeout,
		logger:    logger.Named("dispatcher"),
	}
}

// starts the recurring timeout check
func (d *Dispatcher) Start() {
	period := d.cfg.Timeout / 4
	if period < 10*time.Millisecond {
		period = 10 * time.Millisecond
	}
	d.checker = d.sched.AddRecurringTask(func(ctx context.Context) {
		d.CheckTimeouts()
	}, period)
}

func (d *Dispatcher) Stop() {
	if d.checker != nil {
		d.checker.Cancel()
	}
}

// RequestRelease records the callback and sends it in the background
// a callback already outstanding for the same holder and at least as strict
// target is not sent again
func (d *Dispatcher) RequestRelease(node types.NodeID, oid types.ObjectID, target types.AccessMode, epoch uint64) {
	d.mu.Lock()
	k := key{node: node, oid: oid}
	if p, exists := d.pending[k]; exists && p.Target <= target && p.Epoch >= epoch {
		d.mu.Unlock()
		return
	}
	p := &Pending{
		Node:     node,
		Object:   oid,
		Target:   target,
		Epoch:    epoch,
		IssuedAt: d.clock.Elapsed(),
	}
	if old, exists := d.pending[k]; exists {
		//keep the original deadline when tightening a request
		p.IssuedAt = old.IssuedAt
	} else {
		metrics.CallbacksPending.Inc()
	}
	d.pending[k] = p
	d.mu.Unlock()

	metrics.CallbackTotal.WithLabelValues(target.String()).Inc()
	d.logger.Debug("requesting release", "node", node, "object", oid, "target", target, "epoch", epoch)

	d.sched.AddTask(func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, d.cfg.SendTimeout)
		defer cancel()
		if err := d.send(ctx, k, target, epoch); err != nil {
			//an unanswered callback ends in a timeout
			d.logger.Warn("callback send failed", "node", node, "object", oid, "error", err)
		}
	})
}

// retry bounds for a node that is too busy to take a callback
const (
	busyRetryInitial = 10 * time.Millisecond
	busyRetryMax     = 500 * time.Millisecond
)

// delivers one callback, asking a busy node again until ctx ends
// stops early once the callback is no longer outstanding
func (d *Dispatcher) send(ctx context.Context, k key, target types.AccessMode, epoch uint64) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = busyRetryInitial
	bo.MaxInterval = busyRetryMax

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if !d.outstanding(k) {
			return struct{}{}, nil
		}
		err := d.sender.SendCallback(ctx, k.node, k.oid, target, epoch)
		if err == nil {
			return struct{}{}, nil
		}
		if !errors.Is(err, types.ErrNodeBusy) {
			return struct{}{}, backoff.Permanent(err)
		}
		metrics.CallbackBusyTotal.Inc()
		d.logger.Debug("node busy, retrying callback", "node", k.node, "object", k.oid)
		return struct{}{}, err
	}, backoff.WithBackOff(bo))
	return err
}

func (d *Dispatcher) outstanding(k key) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, exists := d.pending[k]
	return exists
}

// Released clears the outstanding callback once node holds no more than asked
func (d *Dispatcher) Released(node types.NodeID, oid types.ObjectID, mode types.AccessMode) {
	d.mu.Lock()
	defer d.mu.Unlock()

	k := key{node: node, oid: oid}
	if p, exists := d.pending[k]; exists && mode <= p.Target {
		d.removeLocked(k)
	}
}

func (d *Dispatcher) Forget(node types.NodeID, oid types.ObjectID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.removeLocked(key{node: node, oid: oid})
}

func (d *Dispatcher) NodeGone(node types.NodeID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k := range d.pending {
		if k.node == node {
			d.removeLocked(k)
		}
	}
}

func (d *Dispatcher) removeLocked(k key) {
	if _, exists := d.pending[k]; exists {
		delete(d.pending, k)
		metrics.CallbacksPending.Dec()
	}
}

// CheckTimeouts revokes every node with a callback older than the timeout
// returns the revoked nodes
func (d *Dispatcher) CheckTimeouts() []types.NodeID {
	d.mu.Lock()
	expired := make(map[types.NodeID]struct{})
	for k, p := range d.pending {
		if d.clock.Since(p.IssuedAt) >= d.cfg.Timeout {
			expired[k.node] = struct{}{}
		}
	}
	for k := range d.pending {
		if _, gone := expired[k.node]; gone {
			d.removeLocked(k)
		}
	}
	d.mu.Unlock()

	nodes := make([]types.NodeID, 0, len(expired))
	for n := range expired {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	//the store calls back into the dispatcher, so no lock may be held here
	for _, n := range nodes {
		metrics.CallbackTimeoutTotal.Inc()
		d.logger.Warn("node did not answer callback in time, revoking", "node", n, "timeout", d.cfg.Timeout)
		if d.onTimeout != nil {
			d.onTimeout(n)
		}
	}
	return nodes
}

// snapshot of outstanding callbacks ordered by node and object
func (d *Dispatcher) Pending() []Pending {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Pending, 0, len(d.pending))
	for _, p := range d.pending {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Node != out[j].Node {
			return out[i].Node < out[j].Node
		}
		return out[i].Object < out[j].Object
	})
	return out
}
