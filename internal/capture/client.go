package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Gate is the external capability-acquisition handshake that must
// succeed before a clock-in may persist a session. Acquire is bounded
// by the context and the configured timeout; Release is best-effort
// and called after a completed clock-out has been persisted.
type Gate interface {
	Acquire(ctx context.Context, workerID string) error
	Release(ctx context.Context, workerID string) error
}

// httpGate implements Gate against a monitoring agent's HTTP API.
type httpGate struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewHTTPGate creates a Gate that talks to the monitoring agent named
// in cfg. When capture is disabled in cfg, returns a gate that always
// grants.
func NewHTTPGate(cfg Config, observer Observer) Gate {
	if observer == nil {
		observer = NoopObserver{}
	}
	if !cfg.Enabled {
		return Disabled()
	}
	return &httpGate{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// captureRequest is the JSON body sent to POST /capture/start and
// POST /capture/stop.
type captureRequest struct {
	WorkerID string `json:"worker_id"`
}

// captureResponse is the JSON body returned by POST /capture/start.
type captureResponse struct {
	Granted bool   `json:"granted"`
	Reason  string `json:"reason,omitempty"`
}

func (g *httpGate) Acquire(ctx context.Context, workerID string) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	err := g.doStart(ctx, workerID)
	g.observer.OnCapture(Event{Op: "acquire", WorkerID: workerID, Duration: time.Since(start), Err: err})
	return err
}

func (g *httpGate) doStart(ctx context.Context, workerID string) error {
	body, err := json.Marshal(captureRequest{WorkerID: workerID})
	if err != nil {
		return fmt.Errorf("encoding capture request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.Endpoint+"/capture/start", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building capture request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		if errors.Is(err, context.Canceled) {
			return context.Canceled
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: agent returned status %d", ErrDenied, resp.StatusCode)
	}

	var out captureResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decoding capture response: %w", err)
	}
	if !out.Granted {
		if out.Reason != "" {
			return fmt.Errorf("%w: %s", ErrDenied, out.Reason)
		}
		return ErrDenied
	}
	return nil
}

func (g *httpGate) Release(ctx context.Context, workerID string) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	err := g.doStop(ctx, workerID)
	g.observer.OnCapture(Event{Op: "release", WorkerID: workerID, Duration: time.Since(start), Err: err})
	return err
}

func (g *httpGate) doStop(ctx context.Context, workerID string) error {
	body, err := json.Marshal(captureRequest{WorkerID: workerID})
	if err != nil {
		return fmt.Errorf("encoding capture request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.Endpoint+"/capture/stop", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building capture request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("capture stop: agent returned status %d", resp.StatusCode)
	}
	return nil
}

// disabledGate always grants. Used when capture is turned off.
type disabledGate struct{}

// Disabled returns a Gate that grants every acquire and ignores
// releases.
func Disabled() Gate {
	return disabledGate{}
}

func (disabledGate) Acquire(ctx context.Context, workerID string) error { return ctx.Err() }
func (disabledGate) Release(ctx context.Context, workerID string) error { return nil }
