// Package gateway serves the HTTP admin surface: prometheus metrics, server
// stats and per-node status.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/hashicorp/go-hclog"
	"github.com/pixperk/cohere/pkg/server"
	"github.com/pixperk/cohere/pkg/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// what the admin surface reads from the running server
type Source interface {
	NodeStatus(node types.NodeID) server.NodeStatus
	Stats() server.Stats
}

type Server struct {
	httpServer *http.Server
	source     Source
	logger     hclog.Logger
}

func NewServer(httpAddr string, source Source, logger hclog.Logger) (*Server, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	s := &Server{
		source: source,
		logger: logger.Named("gateway"),
	}
	mux, err := s.mux()
	if err != nil {
		return nil, err
	}
	s.httpServer = &http.Server{
		Addr:    httpAddr,
		Handler: mux,
	}
	return s, nil
}

func (s *Server) mux() (*runtime.ServeMux, error) {
	mux := runtime.NewServeMux()

	metrics := promhttp.Handler()
	routes := []struct {
		method, pattern string
		h               runtime.HandlerFunc
	}{
		{http.MethodGet, "/metrics", func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
			metrics.ServeHTTP(w, r)
		}},
		{http.MethodGet, "/v1/stats", s.handleStats},
		{http.MethodGet, "/v1/nodes/{node}/status", s.handleNodeStatus},
	}
	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, rt.pattern, rt.h); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", rt.pattern, err)
		}
	}
	return mux, nil
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	s.writeJSON(w, http.StatusOK, s.source.Stats())
}

func (s *Server) handleNodeStatus(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	node := params["node"]
	if node == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "node required"})
		return
	}
	s.writeJSON(w, http.StatusOK, s.source.NodeStatus(types.NodeID(node)))
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}

// serves until ctx is cancelled or Stop is called; returns nil after a clean shutdown
func (s *Server) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, lis)
}

func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := s.Stop(shutdownCtx); err != nil {
				s.logger.Warn("gateway shutdown", "error", err)
			}
		case <-done:
		}
	}()

	s.logger.Info("HTTP admin listening", "addr", lis.Addr().String())
	if err := s.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP gateway: %w", err)
	}
	return nil
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
