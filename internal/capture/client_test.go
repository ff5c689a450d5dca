package capture

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	cfg.TimeoutMs = 2000
	return cfg
}

func TestHTTPGate_Acquire_Granted(t *testing.T) {
	var gotWorker string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/capture/start", r.URL.Path)
		var req captureRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotWorker = req.WorkerID
		json.NewEncoder(w).Encode(captureResponse{Granted: true})
	}))
	defer srv.Close()

	gate := NewHTTPGate(testConfig(srv.URL), nil)
	err := gate.Acquire(context.Background(), "w1")
	require.NoError(t, err)
	assert.Equal(t, "w1", gotWorker)
}

func TestHTTPGate_Acquire_Denied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(captureResponse{Granted: false, Reason: "screen capture unavailable"})
	}))
	defer srv.Close()

	gate := NewHTTPGate(testConfig(srv.URL), nil)
	err := gate.Acquire(context.Background(), "w1")
	assert.ErrorIs(t, err, ErrDenied)
}

func TestHTTPGate_Acquire_DeniedOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	gate := NewHTTPGate(testConfig(srv.URL), nil)
	assert.ErrorIs(t, gate.Acquire(context.Background(), "w1"), ErrDenied)
}

func TestHTTPGate_Acquire_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		json.NewEncoder(w).Encode(captureResponse{Granted: true})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50
	gate := NewHTTPGate(cfg, nil)
	assert.ErrorIs(t, gate.Acquire(context.Background(), "w1"), ErrTimeout)
}

func TestHTTPGate_Acquire_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		json.NewEncoder(w).Encode(captureResponse{Granted: true})
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	gate := NewHTTPGate(testConfig(srv.URL), nil)
	assert.ErrorIs(t, gate.Acquire(ctx, "w1"), context.Canceled)
}

func TestHTTPGate_Acquire_AgentDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before use

	gate := NewHTTPGate(testConfig(srv.URL), nil)
	assert.ErrorIs(t, gate.Acquire(context.Background(), "w1"), ErrUnavailable)
}

func TestHTTPGate_Release(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	gate := NewHTTPGate(testConfig(srv.URL), nil)
	require.NoError(t, gate.Release(context.Background(), "w1"))
	assert.Equal(t, "/capture/stop", path)
}

func TestNewHTTPGate_DisabledAlwaysGrants(t *testing.T) {
	cfg := DefaultConfig() // Enabled false
	gate := NewHTTPGate(cfg, nil)

	assert.NoError(t, gate.Acquire(context.Background(), "w1"))
	assert.NoError(t, gate.Release(context.Background(), "w1"))
}
