package testutil

import (
	"time"

	"github.com/agencyops/timeclock/internal/domain"
	"github.com/google/uuid"
)

// WorkerOption mutates a test worker before it is returned.
type WorkerOption func(*domain.Worker)

// NewTestWorker builds a worker with sensible defaults.
func NewTestWorker(name string, opts ...WorkerOption) *domain.Worker {
	w := &domain.Worker{
		ID:          uuid.New().String(),
		DisplayName: name,
		CreatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// SessionOption mutates a test session before it is returned.
type SessionOption func(*domain.Session)

// WithClockIn sets the session's clock-in anchor.
func WithClockIn(t time.Time) SessionOption {
	return func(s *domain.Session) { s.ClockIn = t }
}

// WithCompleted marks the session completed with the given clock-out
// and final totals.
func WithCompleted(clockOut time.Time, workSeconds, breakSeconds int64) SessionOption {
	return func(s *domain.Session) {
		out := clockOut
		s.ClockOut = &out
		s.Status = domain.SessionCompleted
		s.TotalWorkSeconds = workSeconds
		s.TotalBreakSeconds = breakSeconds
	}
}

// WithAttemptID sets the session's clock-in attempt id.
func WithAttemptID(id string) SessionOption {
	return func(s *domain.Session) { s.AttemptID = id }
}

// NewTestSession builds an active session with sensible defaults.
func NewTestSession(workerID string, opts ...SessionOption) *domain.Session {
	now := time.Now().UTC()
	s := &domain.Session{
		ID:        uuid.New().String(),
		WorkerID:  workerID,
		AttemptID: uuid.New().String(),
		ClockIn:   now,
		Status:    domain.SessionActive,
		CreatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BreakOption mutates a test break before it is returned.
type BreakOption func(*domain.Break)

// WithBreakStart sets the break's start anchor.
func WithBreakStart(t time.Time) BreakOption {
	return func(b *domain.Break) { b.Start = t }
}

// WithBreakClosed closes the break with the given end and duration.
func WithBreakClosed(end time.Time, durationSeconds int64) BreakOption {
	return func(b *domain.Break) {
		e := end
		b.End = &e
		b.DurationSeconds = durationSeconds
	}
}

// NewTestBreak builds an open break with sensible defaults.
func NewTestBreak(sessionID string, opts ...BreakOption) *domain.Break {
	now := time.Now().UTC()
	b := &domain.Break{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Start:     now,
		CreatedAt: now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}
