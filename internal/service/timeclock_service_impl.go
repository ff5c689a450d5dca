package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/agencyops/timeclock/internal/capture"
	"github.com/agencyops/timeclock/internal/clock"
	"github.com/agencyops/timeclock/internal/db"
	"github.com/agencyops/timeclock/internal/domain"
	"github.com/agencyops/timeclock/internal/repository"
	"github.com/google/uuid"
)

type timeclockService struct {
	sessions repository.SessionRepo
	breaks   repository.BreakRepo
	uow      db.UnitOfWork
	gate     capture.Gate
	clock    clock.Clock
	observer UseCaseObserver

	// locks serializes transitions per worker so check-then-act is
	// atomic for one worker while different workers proceed in parallel.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewTimeclockService creates the session state machine over the given
// store, capture gate, and clock.
func NewTimeclockService(
	sessions repository.SessionRepo,
	breaks repository.BreakRepo,
	uow db.UnitOfWork,
	gate capture.Gate,
	clk clock.Clock,
	observers ...UseCaseObserver,
) TimeclockService {
	return &timeclockService{
		sessions: sessions,
		breaks:   breaks,
		uow:      uow,
		gate:     gate,
		clock:    clk,
		observer: useCaseObserverOrNoop(observers),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *timeclockService) workerLock(workerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[workerID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[workerID] = l
	}
	return l
}

func (s *timeclockService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: startedAt,
	})
}

func persistence(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
}

// mapCaptureErr translates gate outcomes into the transition taxonomy.
// Caller cancellation passes through as context.Canceled; either way
// the worker lands back in the not-clocked-in state with no row.
func mapCaptureErr(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, capture.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrCaptureTimeout, err)
	default:
		return fmt.Errorf("%w: %v", ErrCaptureDenied, err)
	}
}

func (s *timeclockService) ClockIn(ctx context.Context, workerID string) (*domain.Session, error) {
	return s.ClockInAttempt(ctx, workerID, uuid.New().String())
}

func (s *timeclockService) ClockInAttempt(ctx context.Context, workerID, attemptID string) (sess *domain.Session, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, "clock_in", startedAt, err, map[string]any{"worker_id": workerID})
	}()

	lock := s.workerLock(workerID)
	lock.Lock()
	defer lock.Unlock()

	// A retried attempt that already produced a row converges on it.
	existing, getErr := s.sessions.GetByAttemptID(ctx, attemptID)
	if getErr == nil {
		return existing, nil
	}
	if !errors.Is(getErr, repository.ErrNotFound) {
		return nil, persistence(getErr)
	}

	_, activeErr := s.sessions.GetActiveByWorker(ctx, workerID)
	if activeErr == nil {
		return nil, ErrAlreadyActive
	}
	if !errors.Is(activeErr, repository.ErrNotFound) {
		return nil, persistence(activeErr)
	}

	// Pending capture: no session row may exist until the external
	// handshake grants. The wait is bounded by the gate's timeout and
	// cancellable through ctx.
	if acqErr := s.gate.Acquire(ctx, workerID); acqErr != nil {
		return nil, mapCaptureErr(acqErr)
	}

	now := s.clock.Now()
	sess = &domain.Session{
		ID:        uuid.New().String(),
		WorkerID:  workerID,
		AttemptID: attemptID,
		ClockIn:   now,
		Status:    domain.SessionActive,
		CreatedAt: now,
	}
	if createErr := s.sessions.Create(ctx, sess); createErr != nil {
		// The capability was acquired but no session exists; release
		// it so nothing leaks past a failed clock-in.
		_ = s.gate.Release(ctx, workerID)
		if errors.Is(createErr, repository.ErrConflict) {
			return nil, ErrAlreadyActive
		}
		return nil, persistence(createErr)
	}
	return sess, nil
}

func (s *timeclockService) StartBreak(ctx context.Context, sessionID string) (brk *domain.Break, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, "start_break", startedAt, err, map[string]any{"session_id": sessionID})
	}()

	sess, getErr := s.sessions.GetByID(ctx, sessionID)
	if getErr != nil {
		if errors.Is(getErr, repository.ErrNotFound) {
			return nil, ErrNotActive
		}
		return nil, persistence(getErr)
	}

	lock := s.workerLock(sess.WorkerID)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock: the session may have completed since.
	sess, getErr = s.sessions.GetByID(ctx, sessionID)
	if getErr != nil {
		return nil, persistence(getErr)
	}
	if sess.Status != domain.SessionActive {
		return nil, ErrNotActive
	}

	_, openErr := s.breaks.GetOpenBySession(ctx, sessionID)
	if openErr == nil {
		return nil, ErrBreakAlreadyOpen
	}
	if !errors.Is(openErr, repository.ErrNotFound) {
		return nil, persistence(openErr)
	}

	now := s.clock.Now()
	brk = &domain.Break{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Start:     now,
		CreatedAt: now,
	}
	if createErr := s.breaks.Create(ctx, brk); createErr != nil {
		if errors.Is(createErr, repository.ErrConflict) {
			return nil, ErrBreakAlreadyOpen
		}
		return nil, persistence(createErr)
	}
	return brk, nil
}

func (s *timeclockService) EndBreak(ctx context.Context, breakID string) (duration int64, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, "end_break", startedAt, err, map[string]any{"break_id": breakID})
	}()

	brk, getErr := s.breaks.GetByID(ctx, breakID)
	if getErr != nil {
		if errors.Is(getErr, repository.ErrNotFound) {
			return 0, ErrNoOpenBreak
		}
		return 0, persistence(getErr)
	}

	sess, getErr := s.sessions.GetByID(ctx, brk.SessionID)
	if getErr != nil {
		return 0, persistence(getErr)
	}

	lock := s.workerLock(sess.WorkerID)
	lock.Lock()
	defer lock.Unlock()

	brk, getErr = s.breaks.GetByID(ctx, breakID)
	if getErr != nil {
		return 0, persistence(getErr)
	}
	if !brk.Open() {
		return 0, ErrNoOpenBreak
	}

	now := s.clock.Now()
	duration = int64(now.Sub(brk.Start).Seconds())
	if duration < 0 {
		duration = 0
	}
	if closeErr := s.breaks.Close(ctx, breakID, now, duration); closeErr != nil {
		if errors.Is(closeErr, repository.ErrNotFound) {
			return 0, ErrNoOpenBreak
		}
		return 0, persistence(closeErr)
	}
	return duration, nil
}

func (s *timeclockService) ClockOut(ctx context.Context, sessionID string) (work, brk int64, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, "clock_out", startedAt, err, map[string]any{"session_id": sessionID})
	}()

	sess, getErr := s.sessions.GetByID(ctx, sessionID)
	if getErr != nil {
		if errors.Is(getErr, repository.ErrNotFound) {
			return 0, 0, ErrNotActive
		}
		return 0, 0, persistence(getErr)
	}

	lock := s.workerLock(sess.WorkerID)
	lock.Lock()
	defer lock.Unlock()

	var workerID string
	txErr := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txBreaks := repository.NewSQLiteBreakRepo(tx)

		// Read a consistent snapshot of the anchors inside the
		// transaction; the totals are computed from exactly what gets
		// completed.
		sess, err := txSessions.GetByID(ctx, sessionID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotActive
			}
			return persistence(err)
		}
		if sess.Status != domain.SessionActive {
			return ErrNotActive
		}

		breaks, err := txBreaks.ListBySession(ctx, sessionID)
		if err != nil {
			return persistence(err)
		}
		sess.Breaks = breaks
		if sess.OpenBreak() != nil {
			return ErrBreakInProgress
		}

		now := s.clock.Now()
		work = sess.WorkSeconds(now)
		brk = sess.BreakSeconds(now)
		workerID = sess.WorkerID

		if err := txSessions.Complete(ctx, sessionID, now, work, brk); err != nil {
			return persistence(err)
		}
		return nil
	})
	if txErr != nil {
		// Begin/commit failures come back from the UnitOfWork without
		// taxonomy; everything the callback didn't classify is a
		// retryable store failure.
		if !errors.Is(txErr, ErrNotActive) && !errors.Is(txErr, ErrBreakInProgress) && !errors.Is(txErr, ErrPersistenceFailed) {
			txErr = persistence(txErr)
		}
		return 0, 0, txErr
	}

	// Persist-then-release: whatever the gate acquired on the way in
	// is released on the way out. Release failure never blocks the
	// completed clock-out.
	_ = s.gate.Release(ctx, workerID)

	return work, brk, nil
}

func (s *timeclockService) GetActiveSession(ctx context.Context, workerID string) (*domain.Session, error) {
	sess, err := s.sessions.GetActiveByWorker(ctx, workerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, persistence(err)
	}
	breaks, err := s.breaks.ListBySession(ctx, sess.ID)
	if err != nil {
		return nil, persistence(err)
	}
	sess.Breaks = breaks
	return sess, nil
}
