package capture

import (
	"io"
	"log/slog"
	"time"
)

// Event captures one handshake call against the monitoring agent.
type Event struct {
	Op       string // "acquire" or "release"
	WorkerID string
	Duration time.Duration
	Err      error
}

// Observer receives capture handshake events.
type Observer interface {
	OnCapture(event Event)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) OnCapture(Event) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes handshake events to the provided writer.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) OnCapture(event Event) {
	attrs := []any{
		"op", event.Op,
		"worker_id", event.WorkerID,
		"duration_ms", event.Duration.Milliseconds(),
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.Error("capture_handshake", attrs...)
		return
	}
	o.logger.Info("capture_handshake", attrs...)
}
