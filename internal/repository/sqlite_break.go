package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/agencyops/timeclock/internal/db"
	"github.com/agencyops/timeclock/internal/domain"
)

const breakColumns = `id, session_id, break_start, break_end, duration_seconds, created_at`

// SQLiteBreakRepo implements BreakRepo using a SQLite database.
type SQLiteBreakRepo struct {
	db db.DBTX
}

// NewSQLiteBreakRepo creates a new SQLiteBreakRepo.
func NewSQLiteBreakRepo(db db.DBTX) *SQLiteBreakRepo {
	return &SQLiteBreakRepo{db: db}
}

func (r *SQLiteBreakRepo) Create(ctx context.Context, b *domain.Break) error {
	query := `INSERT INTO session_breaks (` + breakColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.SessionID,
		b.Start.UTC().Format(time.RFC3339),
		nullableTimeToString(b.End),
		b.DurationSeconds,
		b.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("open break exists for session %s: %w", b.SessionID, ErrConflict)
		}
		return fmt.Errorf("inserting session break: %w", err)
	}
	return nil
}

func (r *SQLiteBreakRepo) GetByID(ctx context.Context, id string) (*domain.Break, error) {
	query := `SELECT ` + breakColumns + ` FROM session_breaks WHERE id = ?`
	return r.scanBreak(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteBreakRepo) GetOpenBySession(ctx context.Context, sessionID string) (*domain.Break, error) {
	query := `SELECT ` + breakColumns + ` FROM session_breaks WHERE session_id = ? AND break_end IS NULL`
	return r.scanBreak(r.db.QueryRowContext(ctx, query, sessionID))
}

func (r *SQLiteBreakRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.Break, error) {
	query := `SELECT ` + breakColumns + ` FROM session_breaks WHERE session_id = ? ORDER BY break_start`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing breaks by session: %w", err)
	}
	defer rows.Close()

	var breaks []*domain.Break
	for rows.Next() {
		var b domain.Break
		var startStr, createdAtStr string
		var endStr sql.NullString

		if err := rows.Scan(&b.ID, &b.SessionID, &startStr, &endStr, &b.DurationSeconds, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning break row: %w", err)
		}
		brk, parseErr := r.populateBreak(&b, startStr, endStr, createdAtStr)
		if parseErr != nil {
			return nil, parseErr
		}
		breaks = append(breaks, brk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating breaks: %w", err)
	}
	return breaks, nil
}

func (r *SQLiteBreakRepo) Close(ctx context.Context, id string, end time.Time, durationSeconds int64) error {
	query := `UPDATE session_breaks SET break_end = ?, duration_seconds = ?
		WHERE id = ? AND break_end IS NULL`
	res, err := r.db.ExecContext(ctx, query,
		end.UTC().Format(time.RFC3339),
		durationSeconds,
		id,
	)
	if err != nil {
		return fmt.Errorf("closing session break: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("closing session break: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("open break %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanBreak scans a single break from a *sql.Row.
func (r *SQLiteBreakRepo) scanBreak(row *sql.Row) (*domain.Break, error) {
	var b domain.Break
	var startStr, createdAtStr string
	var endStr sql.NullString

	err := row.Scan(&b.ID, &b.SessionID, &startStr, &endStr, &b.DurationSeconds, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session break: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session break: %w", err)
	}
	return r.populateBreak(&b, startStr, endStr, createdAtStr)
}

// populateBreak fills in parsed fields on a Break after scanning raw strings.
func (r *SQLiteBreakRepo) populateBreak(b *domain.Break, startStr string, endStr sql.NullString, createdAtStr string) (*domain.Break, error) {
	var parseErr error
	b.Start, parseErr = time.Parse(time.RFC3339, startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing break_start: %w", parseErr)
	}
	b.End = parseNullableTime(endStr)
	b.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return b, nil
}
