package service

import (
	"context"
	"time"

	"github.com/agencyops/timeclock/internal/domain"
)

// TimeclockService is the session state machine: clock-in (gated by
// the capture handshake), break start/end, and clock-out. Transitions
// for one worker are serialized; different workers proceed in parallel.
type TimeclockService interface {
	// ClockIn starts a new session for the worker after a successful
	// capture handshake. The wait is bounded and cancellable via ctx.
	ClockIn(ctx context.Context, workerID string) (*domain.Session, error)
	// ClockInAttempt is ClockIn with a caller-supplied idempotency
	// key: retrying the same attempt after ErrPersistenceFailed can
	// never create a second session row.
	ClockInAttempt(ctx context.Context, workerID, attemptID string) (*domain.Session, error)
	StartBreak(ctx context.Context, sessionID string) (*domain.Break, error)
	// EndBreak closes the open break and returns its duration in seconds.
	EndBreak(ctx context.Context, breakID string) (int64, error)
	// ClockOut completes the session and returns the final work and
	// break totals in seconds.
	ClockOut(ctx context.Context, sessionID string) (int64, int64, error)
	// GetActiveSession returns the worker's active session with its
	// breaks attached, or nil when the worker is not clocked in.
	GetActiveSession(ctx context.Context, workerID string) (*domain.Session, error)
}

// RangeReport is the all-workers breakdown over a half-open interval.
type RangeReport struct {
	Start   time.Time
	End     time.Time
	Workers []*domain.Aggregate
	Total   domain.Aggregate
}

// ReportService rolls sessions into per-day, per-range, and
// all-workers totals. Sessions are attributed to the bucket containing
// their clock_in; a worker with no sessions in range gets a
// zero-valued aggregate, never an error.
type ReportService interface {
	DailyTotal(ctx context.Context, workerID string, day time.Time) (*domain.Aggregate, error)
	RangeTotal(ctx context.Context, workerID string, start, end time.Time) (*domain.Aggregate, error)
	AllWorkersRangeTotal(ctx context.Context, start, end time.Time) (*RangeReport, error)
}

type WorkerService interface {
	Register(ctx context.Context, displayName string) (*domain.Worker, error)
	GetByID(ctx context.Context, id string) (*domain.Worker, error)
	List(ctx context.Context) ([]*domain.Worker, error)
}
