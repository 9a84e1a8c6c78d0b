// Package client is the node runtime: it connects a node's cache and update
// queue to the store, keeps the node's session alive and serves the callbacks
// the store sends.
package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	pb "github.com/pixperk/cohere/api/v1"
	"github.com/pixperk/cohere/pkg/cache"
	"github.com/pixperk/cohere/pkg/queue"
	"github.com/pixperk/cohere/pkg/scheduler"
	"github.com/pixperk/cohere/pkg/storage"
	"github.com/pixperk/cohere/pkg/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type Config struct {
	NodeID            types.NodeID // generated and kept in the journal when empty
	ServerAddr        string       // request service
	QueueAddr         string       // update-queue service
	CallbackListen    string       // where this node serves callbacks
	CallbackAdvertise string       // address handed to the server, defaults to the listener's
	DataDir           string       // queue journal, in memory when empty

	Queue        queue.Config
	Policy       cache.RetentionPolicy
	Workers      int64         // scheduler capacity for callbacks and releases
	MaxReconnect time.Duration // upper bound between reconnect attempts
	Logger       hclog.Logger
}

type Client struct {
	cfg    Config
	node   types.NodeID
	logger hclog.Logger

	conn    *grpc.ClientConn
	qconn   *grpc.ClientConn
	store   pb.StoreClient
	updates pb.UpdateQueueClient

	journal  *storage.BoltJournal
	queue    *queue.Queue
	cache    *cache.Cache
	sched    *scheduler.Pool
	cbServer *grpc.Server
	cbLis    net.Listener

	mu        sync.Mutex
	connected bool
	heartbeat time.Duration
	stream    pb.Store_SessionClient

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 32
	}
	if cfg.MaxReconnect <= 0 {
		cfg.MaxReconnect = 5 * time.Second
	}

	conn, err := grpc.NewClient(cfg.ServerAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	qconn, err := grpc.NewClient(cfg.QueueAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect update queue: %w", err)
	}

	return &Client{
		cfg:     cfg,
		logger:  cfg.Logger,
		conn:    conn,
		qconn:   qconn,
		store:   pb.NewStoreClient(conn),
		updates: pb.NewUpdateQueueClient(qconn),
		sched:   scheduler.NewPool(cfg.Workers, cfg.Logger),
	}, nil
}

// Start recovers the update queue, registers the node and starts the session,
// sender and callback loops; it returns once the node can run transactions
func (c *Client) Start(ctx context.Context) error {
	node := c.cfg.NodeID
	var journal queue.Journal
	if c.cfg.DataDir != "" {
		j, err := storage.OpenJournal(c.cfg.DataDir)
		if err != nil {
			return err
		}
		c.journal = j
		journal = j

		if node == "" {
			node, err = j.NodeID(func() types.NodeID { return types.NodeID(uuid.NewString()) })
			if err != nil {
				return fmt.Errorf("failed to load node id: %w", err)
			}
		}
	}
	if node == "" {
		node = types.NodeID(uuid.NewString())
	}
	c.node = node
	c.logger = c.cfg.Logger.With("node", node)

	q, err := queue.Open(ctx, node, journal, &updateSender{updates: c.updates}, c.cfg.Queue, c.logger)
	if err != nil {
		return err
	}
	c.queue = q

	c.cache = cache.New(&remote{node: node, store: c.store}, q, cache.Options{
		Policy:    c.cfg.Policy,
		Scheduler: c.sched,
		Logger:    c.logger,
	})

	if err := c.serveCallbacks(); err != nil {
		return err
	}

	if err := c.register(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		if err := c.queue.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Error("update queue stopped", "error", err)
		}
	}()
	go func() {
		defer c.wg.Done()
		c.sessionLoop(runCtx)
	}()

	c.logger.Info("node started", "server", c.cfg.ServerAddr, "callbacks", c.cbLis.Addr().String())
	return nil
}

func (c *Client) serveCallbacks() error {
	lis, err := net.Listen("tcp", c.cfg.CallbackListen)
	if err != nil {
		return fmt.Errorf("failed to listen for callbacks on %s: %w", c.cfg.CallbackListen, err)
	}
	c.cbLis = lis
	c.cbServer = grpc.NewServer()
	pb.RegisterCallbackServer(c.cbServer, &callbackService{c: c})

	go func() {
		if err := c.cbServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			c.logger.Error("callback server failed", "error", err)
		}
	}()
	return nil
}

func (c *Client) callbackAddr() string {
	if c.cfg.CallbackAdvertise != "" {
		return c.cfg.CallbackAdvertise
	}
	return c.cbLis.Addr().String()
}

// opens a session and its heartbeat stream
func (c *Client) register(ctx context.Context) error {
	resp, err := c.store.Register(ctx, &pb.RegisterRequest{
		NodeId:       string(c.node),
		CallbackAddr: c.callbackAddr(),
	})
	if err != nil {
		return fmt.Errorf("register: %w", fromGRPCError(err))
	}

	streamCtx, cancel := context.WithCancel(context.Background())
	stream, err := c.store.Session(streamCtx)
	if err != nil {
		cancel()
		return fmt.Errorf("session stream: %w", fromGRPCError(err))
	}
	if err := stream.Send(&pb.HeartbeatRequest{NodeId: string(c.node)}); err != nil {
		cancel()
		return fmt.Errorf("session stream: %w", fromGRPCError(err))
	}
	if _, err := stream.Recv(); err != nil {
		cancel()
		return fmt.Errorf("session stream: %w", fromGRPCError(err))
	}

	interval := time.Duration(resp.HeartbeatMs) * time.Millisecond
	if interval <= 0 {
		interval = time.Duration(resp.SessionTtlMs) * time.Millisecond / 3
	}

	c.mu.Lock()
	c.connected = true
	c.heartbeat = interval
	c.stream = &cancelStream{Store_SessionClient: stream, cancel: cancel}
	c.mu.Unlock()

	c.logger.Info("session established", "ttl_ms", resp.SessionTtlMs, "heartbeat", interval)
	return nil
}

// ties the stream's context to the stream
type cancelStream struct {
	pb.Store_SessionClient
	cancel context.CancelFunc
}

// heartbeats the session and reconnects after it is lost
func (c *Client) sessionLoop(ctx context.Context) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = c.cfg.MaxReconnect

	for {
		err := c.heartbeatLoop(ctx)
		if ctx.Err() != nil {
			return
		}
		c.sessionLost(err)

		for {
			wait := bo.NextBackOff()
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}

			if err := c.register(ctx); err != nil {
				c.logger.Warn("reconnect failed", "error", err)
				continue
			}
			bo.Reset()
			if err := c.queue.Resync(ctx); err != nil {
				c.logger.Warn("update queue resync failed", "error", err)
			}
			break
		}
	}
}

func (c *Client) heartbeatLoop(ctx context.Context) error {
	c.mu.Lock()
	stream := c.stream
	interval := c.heartbeat
	c.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := stream.Send(&pb.HeartbeatRequest{NodeId: string(c.node)}); err != nil {
				return err
			}
			if _, err := stream.Recv(); err != nil {
				return err
			}
		}
	}
}

// the store has revoked or will revoke every mode this node held
func (c *Client) sessionLost(err error) {
	c.mu.Lock()
	c.connected = false
	if cs, ok := c.stream.(*cancelStream); ok {
		cs.cancel()
	}
	c.stream = nil
	c.mu.Unlock()

	c.logger.Warn("session lost, invalidating cache", "error", err)
	c.cache.Invalidate()
}

// reports whether the node currently has a session
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Client) Node() types.NodeID {
	return c.node
}

func (c *Client) Cache() *cache.Cache {
	return c.cache
}

func (c *Client) Queue() *queue.Queue {
	return c.queue
}

// starts a local transaction
func (c *Client) Begin() *cache.Txn {
	return c.cache.Begin()
}

// Stop ends the session and shuts the node down; batches not yet acknowledged
// stay in the journal and are replayed on the next start
func (c *Client) Stop(ctx context.Context) error {
	var result *multierror.Error

	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Lock()
	if cs, ok := c.stream.(*cancelStream); ok {
		cs.CloseSend()
		cs.cancel()
	}
	c.stream = nil
	c.connected = false
	c.mu.Unlock()

	if c.queue != nil {
		c.queue.Close()
	}
	c.wg.Wait()

	if c.cbServer != nil {
		c.cbServer.Stop()
	}
	if err := c.sched.Shutdown(ctx); err != nil {
		result = multierror.Append(result, fmt.Errorf("scheduler: %w", err))
	}
	if err := c.conn.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("store connection: %w", err))
	}
	if err := c.qconn.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("queue connection: %w", err))
	}
	if c.journal != nil {
		if err := c.journal.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("journal: %w", err))
		}
	}
	return result.ErrorOrNil()
}
