package gateway

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pixperk/cohere/pkg/server"
	"github.com/pixperk/cohere/pkg/store"
	"github.com/pixperk/cohere/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct{}

func (fakeSource) NodeStatus(node types.NodeID) server.NodeStatus {
	return server.NodeStatus{Node: node, LastAppliedSeq: 4, Connected: true, CallbackAddr: "127.0.0.1:44541"}
}

func (fakeSource) Stats() server.Stats {
	return server.Stats{Stats: store.Stats{Objects: 2, NextID: 3}, Sessions: 1}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNodeStatus(t *testing.T) {
	gw, err := NewServer("127.0.0.1:0", fakeSource{}, nil)
	require.NoError(t, err)

	rec := get(t, gw.Handler(), "/v1/nodes/node-a/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var st server.NodeStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, types.NodeID("node-a"), st.Node)
	assert.Equal(t, uint64(4), st.LastAppliedSeq)
	assert.True(t, st.Connected)
}

func TestStatsAndMetrics(t *testing.T) {
	gw, err := NewServer("127.0.0.1:0", fakeSource{}, nil)
	require.NoError(t, err)

	rec := get(t, gw.Handler(), "/v1/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sessions":1`)

	rec = get(t, gw.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")

	rec = get(t, gw.Handler(), "/v1/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeStopsOnContextCancel(t *testing.T) {
	gw, err := NewServer("127.0.0.1:0", fakeSource{}, nil)
	require.NoError(t, err)
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- gw.Serve(ctx, lis) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + lis.Addr().String() + "/v1/stats")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("gateway still serving after cancel")
	}
}
