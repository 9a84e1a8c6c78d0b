// Package server serves the store to application nodes: the request service
// with node sessions on the main port, the update-queue service on its own
// port, and callbacks sent to each node's callback service.
package server

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"
	pb "github.com/pixperk/cohere/api/v1"
	"github.com/pixperk/cohere/pkg/callback"
	"github.com/pixperk/cohere/pkg/raft"
	"github.com/pixperk/cohere/pkg/scheduler"
	"github.com/pixperk/cohere/pkg/store"
	"github.com/pixperk/cohere/pkg/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Config struct {
	SessionTTL        time.Duration // session ends when no heartbeat arrives for this long
	HeartbeatInterval time.Duration // advertised to nodes
	CallbackTimeout   time.Duration // node is revoked when a callback stays unanswered
	AcquireTimeout    time.Duration // server-side bound for a blocked acquire, 0 for none
}

type Server struct {
	pb.UnimplementedStoreServer

	cfg        Config
	node       *raft.Node
	store      *store.Store
	sessions   *sessions
	dispatcher *callback.Dispatcher
	sched      *scheduler.Pool
	logger     hclog.Logger

	expiry *scheduler.RecurringHandle
}

// wraps the raft node into the gRPC services
func NewServer(cfg Config, node *raft.Node, sched *scheduler.Pool, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	st := node.Store()

	s := &Server{
		cfg:      cfg,
		node:     node,
		store:    st,
		sessions: newSessions(cfg.SessionTTL, st, logger),
		sched:    sched,
		logger:   logger.Named("server"),
	}
	s.dispatcher = callback.NewDispatcher(callback.Config{
		Timeout:     cfg.CallbackTimeout,
		SendTimeout: cfg.CallbackTimeout,
	}, &callbackSender{sessions: s.sessions}, sched, s.revoke, logger)
	st.SetNotifier(s.dispatcher)

	return s
}

// starts callback timeout checks and session expiry
func (s *Server) Start() {
	s.dispatcher.Start()

	period := s.cfg.SessionTTL / 4
	if period < 10*time.Millisecond {
		period = 10 * time.Millisecond
	}
	s.expiry = s.sched.AddRecurringTask(func(ctx context.Context) {
		s.sessions.expire()
	}, period)
}

// stops background work and ends every session
func (s *Server) Stop() {
	s.dispatcher.Stop()
	if s.expiry != nil {
		s.expiry.Cancel()
	}
	s.sessions.closeAll()
}

// called when a node did not answer a callback in time
func (s *Server) revoke(node types.NodeID) {
	if !s.sessions.end(node, 0, "unresponsive") {
		//no session to end, the modes still have to go
		s.store.ReleaseAll(node)
	}
}

func (s *Server) requireSession(node string) error {
	if node == "" {
		return status.Error(codes.InvalidArgument, "node_id required")
	}
	if _, ok := s.sessions.get(types.NodeID(node)); !ok {
		return toGRPCError(types.ErrNoSession)
	}
	return nil
}

func (s *Server) Acquire(ctx context.Context, req *pb.AcquireRequest) (*pb.AcquireResponse, error) {
	if err := s.requireSession(req.NodeId); err != nil {
		return nil, err
	}

	if s.cfg.AcquireTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.AcquireTimeout)
		defer cancel()
	}

	g, err := s.store.Acquire(ctx, types.NodeID(req.NodeId), types.ObjectID(req.ObjectId), types.ModeFromProto(req.Mode))
	if err != nil {
		return nil, toGRPCError(err)
	}

	return &pb.AcquireResponse{
		Mode:    g.Mode.ToProto(),
		Epoch:   g.Epoch,
		Data:    g.Data,
		Pending: g.Data == nil,
	}, nil
}

func (s *Server) Downgrade(ctx context.Context, req *pb.DowngradeRequest) (*pb.DowngradeResponse, error) {
	if err := s.requireSession(req.NodeId); err != nil {
		return nil, err
	}

	err := s.store.Downgrade(types.NodeID(req.NodeId), types.ObjectID(req.ObjectId), types.ModeFromProto(req.Mode), req.Epoch)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return &pb.DowngradeResponse{}, nil
}

// Create allocates the object through the commit log and grants the creator WRITE
func (s *Server) Create(ctx context.Context, req *pb.CreateRequest) (*pb.CreateResponse, error) {
	if err := s.requireSession(req.NodeId); err != nil {
		return nil, err
	}
	if !s.node.IsLeader() {
		return nil, notLeaderError()
	}

	node := types.NodeID(req.NodeId)
	result, err := s.node.Apply(types.CreateObjectCmd{
		Node: node,
		Name: req.Name,
	})
	if err != nil {
		return nil, toGRPCError(err)
	}
	oid := result.(store.CreateObjectResponse).ID

	//nobody else can see the object yet, so this never blocks
	g, err := s.store.Acquire(ctx, node, oid, types.ModeWrite)
	if err != nil {
		return nil, toGRPCError(err)
	}

	s.logger.Debug("object created", "node", node, "object", oid, "name", req.Name)
	return &pb.CreateResponse{
		ObjectId: uint64(oid),
		Epoch:    g.Epoch,
	}, nil
}

func (s *Server) Lookup(ctx context.Context, req *pb.LookupRequest) (*pb.LookupResponse, error) {
	if err := s.requireSession(req.NodeId); err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "name required")
	}

	oid, err := s.store.Lookup(types.NodeID(req.NodeId), req.Name)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return &pb.LookupResponse{ObjectId: uint64(oid)}, nil
}

// a node as the server sees it
type NodeStatus struct {
	Node           types.NodeID `json:"node"`
	LastAppliedSeq uint64       `json:"last_applied_seq"`
	Connected      bool         `json:"connected"`
	CallbackAddr   string       `json:"callback_addr,omitempty"`
}

func (s *Server) NodeStatus(node types.NodeID) NodeStatus {
	st := NodeStatus{
		Node:           node,
		LastAppliedSeq: s.store.Status(node),
	}
	if sess, ok := s.sessions.get(node); ok {
		st.Connected = true
		st.CallbackAddr = sess.addr
	}
	return st
}

// server-wide counters
type Stats struct {
	store.Stats
	Sessions         int `json:"sessions"`
	PendingCallbacks int `json:"pending_callbacks"`
}

func (s *Server) Stats() Stats {
	return Stats{
		Stats:            s.store.Stats(),
		Sessions:         s.sessions.count(),
		PendingCallbacks: len(s.dispatcher.Pending()),
	}
}
