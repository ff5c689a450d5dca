package repository

import (
	"context"
	"time"

	"github.com/agencyops/timeclock/internal/domain"
)

type WorkerRepo interface {
	Create(ctx context.Context, w *domain.Worker) error
	GetByID(ctx context.Context, id string) (*domain.Worker, error)
	List(ctx context.Context) ([]*domain.Worker, error)
}

type SessionRepo interface {
	// Create inserts a new session row. The insert is idempotent over
	// AttemptID: re-creating a session for an attempt that already
	// produced a row is a no-op, so a retried clock-in can never yield
	// two rows. A second active session for the same worker returns
	// ErrConflict.
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	GetByAttemptID(ctx context.Context, attemptID string) (*domain.Session, error)
	// GetActiveByWorker returns the worker's single active session, or
	// ErrNotFound when the worker is not clocked in.
	GetActiveByWorker(ctx context.Context, workerID string) (*domain.Session, error)
	ListCompletedInRange(ctx context.Context, workerID string, start, end time.Time) ([]*domain.Session, error)
	ListAllCompletedInRange(ctx context.Context, start, end time.Time) ([]*domain.Session, error)
	ListActive(ctx context.Context) ([]*domain.Session, error)
	// Complete sets clock_out, the final totals, and flips status to
	// completed in a single UPDATE.
	Complete(ctx context.Context, id string, clockOut time.Time, workSeconds, breakSeconds int64) error
}

type BreakRepo interface {
	// Create inserts an open break. A second open break for the same
	// session returns ErrConflict.
	Create(ctx context.Context, b *domain.Break) error
	GetByID(ctx context.Context, id string) (*domain.Break, error)
	// GetOpenBySession returns the session's open break, or ErrNotFound.
	GetOpenBySession(ctx context.Context, sessionID string) (*domain.Break, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Break, error)
	// Close sets break_end and duration_seconds in a single UPDATE.
	Close(ctx context.Context, id string, end time.Time, durationSeconds int64) error
}
