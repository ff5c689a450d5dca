package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/agencyops/timeclock/internal/db"
	"github.com/agencyops/timeclock/internal/domain"
)

// SQLiteWorkerRepo implements WorkerRepo using a SQLite database.
type SQLiteWorkerRepo struct {
	db db.DBTX
}

// NewSQLiteWorkerRepo creates a new SQLiteWorkerRepo.
func NewSQLiteWorkerRepo(db db.DBTX) *SQLiteWorkerRepo {
	return &SQLiteWorkerRepo{db: db}
}

func (r *SQLiteWorkerRepo) Create(ctx context.Context, w *domain.Worker) error {
	query := `INSERT INTO workers (id, display_name, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.DisplayName,
		w.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting worker: %w", err)
	}
	return nil
}

func (r *SQLiteWorkerRepo) GetByID(ctx context.Context, id string) (*domain.Worker, error) {
	query := `SELECT id, display_name, created_at FROM workers WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var w domain.Worker
	var createdAtStr string
	if err := row.Scan(&w.ID, &w.DisplayName, &createdAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("worker: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning worker: %w", err)
	}

	var parseErr error
	w.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return &w, nil
}

func (r *SQLiteWorkerRepo) List(ctx context.Context) ([]*domain.Worker, error) {
	query := `SELECT id, display_name, created_at FROM workers ORDER BY display_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing workers: %w", err)
	}
	defer rows.Close()

	var workers []*domain.Worker
	for rows.Next() {
		var w domain.Worker
		var createdAtStr string
		if err := rows.Scan(&w.ID, &w.DisplayName, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning worker row: %w", err)
		}
		var parseErr error
		w.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing created_at: %w", parseErr)
		}
		workers = append(workers, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workers: %w", err)
	}
	return workers, nil
}
