package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/agencyops/timeclock/internal/db"
	"github.com/agencyops/timeclock/internal/domain"
)

const sessionColumns = `id, worker_id, attempt_id, clock_in, clock_out, status, total_work_seconds, total_break_seconds, created_at`

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(db db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	// ON CONFLICT(attempt_id) DO NOTHING makes the insert idempotent
	// per clock-in attempt; a violation of ux_work_sessions_active
	// (second active session) still fails and maps to ErrConflict.
	query := `INSERT INTO work_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(attempt_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.WorkerID,
		s.AttemptID,
		s.ClockIn.UTC().Format(time.RFC3339),
		nullableTimeToString(s.ClockOut),
		string(s.Status),
		s.TotalWorkSeconds,
		s.TotalBreakSeconds,
		s.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("active session exists for worker %s: %w", s.WorkerID, ErrConflict)
		}
		return fmt.Errorf("inserting work session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions WHERE id = ?`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSessionRepo) GetByAttemptID(ctx context.Context, attemptID string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions WHERE attempt_id = ?`
	return r.scanSession(r.db.QueryRowContext(ctx, query, attemptID))
}

func (r *SQLiteSessionRepo) GetActiveByWorker(ctx context.Context, workerID string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions WHERE worker_id = ? AND status = 'active'`
	return r.scanSession(r.db.QueryRowContext(ctx, query, workerID))
}

// ListCompletedInRange returns completed sessions whose clock_in falls
// in the half-open interval [start, end). Sessions are attributed to
// the bucket containing their clock_in; spanning sessions are never
// split across buckets.
func (r *SQLiteSessionRepo) ListCompletedInRange(ctx context.Context, workerID string, start, end time.Time) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions
		WHERE worker_id = ? AND status = 'completed' AND clock_in >= ? AND clock_in < ?
		ORDER BY clock_in`
	rows, err := r.db.QueryContext(ctx, query,
		workerID,
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("listing completed sessions in range: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) ListAllCompletedInRange(ctx context.Context, start, end time.Time) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions
		WHERE status = 'completed' AND clock_in >= ? AND clock_in < ?
		ORDER BY worker_id, clock_in`
	rows, err := r.db.QueryContext(ctx, query,
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("listing completed sessions in range: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) ListActive(ctx context.Context) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions WHERE status = 'active' ORDER BY clock_in`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing active sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) Complete(ctx context.Context, id string, clockOut time.Time, workSeconds, breakSeconds int64) error {
	query := `UPDATE work_sessions
		SET clock_out = ?, total_work_seconds = ?, total_break_seconds = ?, status = 'completed'
		WHERE id = ? AND status = 'active'`
	res, err := r.db.ExecContext(ctx, query,
		clockOut.UTC().Format(time.RFC3339),
		workSeconds,
		breakSeconds,
		id,
	)
	if err != nil {
		return fmt.Errorf("completing work session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("completing work session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("active work session %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.Session, error) {
	var s domain.Session
	var clockInStr, statusStr, createdAtStr string
	var clockOutStr sql.NullString

	err := row.Scan(
		&s.ID, &s.WorkerID, &s.AttemptID, &clockInStr, &clockOutStr, &statusStr,
		&s.TotalWorkSeconds, &s.TotalBreakSeconds, &createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work session: %w", err)
	}

	return r.populateSession(&s, clockInStr, clockOutStr, statusStr, createdAtStr)
}

// scanSessions scans multiple sessions from *sql.Rows.
func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	var sessions []*domain.Session
	for rows.Next() {
		var s domain.Session
		var clockInStr, statusStr, createdAtStr string
		var clockOutStr sql.NullString

		err := rows.Scan(
			&s.ID, &s.WorkerID, &s.AttemptID, &clockInStr, &clockOutStr, &statusStr,
			&s.TotalWorkSeconds, &s.TotalBreakSeconds, &createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}

		session, parseErr := r.populateSession(&s, clockInStr, clockOutStr, statusStr, createdAtStr)
		if parseErr != nil {
			return nil, parseErr
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// populateSession fills in parsed fields on a Session after scanning raw strings.
func (r *SQLiteSessionRepo) populateSession(s *domain.Session, clockInStr string, clockOutStr sql.NullString, statusStr, createdAtStr string) (*domain.Session, error) {
	var parseErr error
	s.ClockIn, parseErr = time.Parse(time.RFC3339, clockInStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing clock_in: %w", parseErr)
	}
	s.ClockOut = parseNullableTime(clockOutStr)
	s.Status = domain.SessionStatus(statusStr)
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return s, nil
}
