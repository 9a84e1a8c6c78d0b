package server

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	pb "github.com/pixperk/cohere/api/v1"
	"github.com/pixperk/cohere/pkg/metrics"
	"github.com/pixperk/cohere/pkg/store"
	ctime "github.com/pixperk/cohere/pkg/time"
	"github.com/pixperk/cohere/pkg/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// a registered node
// the session owns the connection the store uses to call the node back
type session struct {
	node        types.NodeID
	incarnation uint64
	addr        string
	conn        *grpc.ClientConn
	callback    pb.CallbackClient
	deadline    time.Duration // on the session clock, pushed forward by heartbeats
}

// critical :
// - at most one session per node
// - ending a session revokes every mode the node holds
type sessions struct {
	mu     sync.Mutex
	byNode map[types.NodeID]*session
	next   uint64

	ttl    time.Duration
	clock  *ctime.Clock
	store  *store.Store
	logger hclog.Logger
}

func newSessions(ttl time.Duration, s *store.Store, logger hclog.Logger) *sessions {
	return &sessions{
		byNode: make(map[types.NodeID]*session),
		ttl:    ttl,
		clock:  ctime.NewClock(),
		store:  s,
		logger: logger.Named("sessions"),
	}
}

// opens a session for node, replacing any previous one
func (ss *sessions) open(node types.NodeID, addr string) (*session, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, err
	}

	ss.mu.Lock()
	ss.next++
	sess := &session{
		node:        node,
		incarnation: ss.next,
		addr:        addr,
		conn:        conn,
		callback:    pb.NewCallbackClient(conn),
		deadline:    ss.clock.Deadline(ss.ttl),
	}
	old := ss.byNode[node]
	ss.byNode[node] = sess
	ss.mu.Unlock()

	if old != nil {
		ss.finish(old, "replaced")
	}
	metrics.Sessions.Inc()
	ss.logger.Info("session opened", "node", node, "callback_addr", addr, "incarnation", sess.incarnation)
	return sess, nil
}

// returns the node's live session
func (ss *sessions) get(node types.NodeID) (*session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	sess, ok := ss.byNode[node]
	return sess, ok
}

// pushes the session's expiry forward
func (ss *sessions) touch(node types.NodeID) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	sess, ok := ss.byNode[node]
	if !ok {
		return false
	}
	sess.deadline = ss.clock.Deadline(ss.ttl)
	return true
}

// ends the node's session if it is still the given incarnation
// incarnation 0 ends whatever session the node has
func (ss *sessions) end(node types.NodeID, incarnation uint64, reason string) bool {
	ss.mu.Lock()
	sess, ok := ss.byNode[node]
	if !ok || (incarnation != 0 && sess.incarnation != incarnation) {
		ss.mu.Unlock()
		return false
	}
	delete(ss.byNode, node)
	ss.mu.Unlock()

	ss.finish(sess, reason)
	return true
}

// releases everything the session held; called without ss.mu
func (ss *sessions) finish(sess *session, reason string) {
	released := ss.store.ReleaseAll(sess.node)
	sess.conn.Close()

	metrics.Sessions.Dec()
	metrics.SessionEndTotal.WithLabelValues(reason).Inc()
	ss.logger.Info("session ended", "node", sess.node, "reason", reason, "released", released, "incarnation", sess.incarnation)
}

// ends sessions whose heartbeats stopped
func (ss *sessions) expire() {
	ss.mu.Lock()
	var expired []*session
	for node, sess := range ss.byNode {
		if ss.clock.Passed(sess.deadline) {
			expired = append(expired, sess)
			delete(ss.byNode, node)
		}
	}
	ss.mu.Unlock()

	for _, sess := range expired {
		ss.finish(sess, "expired")
	}
}

func (ss *sessions) count() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.byNode)
}

// ends every session, used on shutdown
func (ss *sessions) closeAll() {
	ss.mu.Lock()
	all := ss.byNode
	ss.byNode = make(map[types.NodeID]*session)
	ss.mu.Unlock()

	for _, sess := range all {
		ss.finish(sess, "shutdown")
	}
}

func (s *Server) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {
	if req.NodeId == "" || req.CallbackAddr == "" {
		return nil, status.Error(codes.InvalidArgument, "node_id and callback_addr are required")
	}

	if _, err := s.sessions.open(types.NodeID(req.NodeId), req.CallbackAddr); err != nil {
		return nil, toGRPCError(err)
	}

	return &pb.RegisterResponse{
		SessionTtlMs: s.cfg.SessionTTL.Milliseconds(),
		HeartbeatMs:  s.cfg.HeartbeatInterval.Milliseconds(),
	}, nil
}

// Session keeps a node's session alive for as long as the stream is open
// the stream ending, for any reason, ends the session
func (s *Server) Session(stream pb.Store_SessionServer) error {
	//first heartbeat identifies the node
	req, err := stream.Recv()
	if err != nil {
		return err
	}
	node := types.NodeID(req.NodeId)
	sess, ok := s.sessions.get(node)
	if !ok {
		return toGRPCError(types.ErrNoSession)
	}
	defer s.sessions.end(node, sess.incarnation, "disconnect")

	for {
		if current, ok := s.sessions.get(node); !ok || current.incarnation != sess.incarnation {
			return toGRPCError(types.ErrSessionClosed)
		}
		s.sessions.touch(node)

		err := stream.Send(&pb.HeartbeatResponse{TtlMs: s.cfg.SessionTTL.Milliseconds()})
		if err != nil {
			return err
		}

		if _, err := stream.Recv(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}
