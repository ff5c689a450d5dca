package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are applied in order on every open. Statements must be
// idempotent (CREATE ... IF NOT EXISTS) or tolerated by Migrate.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS workers (
		id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS work_sessions (
		id TEXT PRIMARY KEY,
		worker_id TEXT NOT NULL REFERENCES workers(id),
		attempt_id TEXT NOT NULL UNIQUE,
		clock_in TEXT NOT NULL,
		clock_out TEXT,
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'completed')),
		total_work_seconds INTEGER NOT NULL DEFAULT 0,
		total_break_seconds INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		CHECK (clock_out IS NULL OR clock_out >= clock_in)
	)`,

	// Store-enforced invariant: at most one active session per worker.
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_work_sessions_active
		ON work_sessions(worker_id) WHERE status = 'active'`,

	`CREATE INDEX IF NOT EXISTS ix_work_sessions_worker_clock_in
		ON work_sessions(worker_id, clock_in)`,

	`CREATE TABLE IF NOT EXISTS session_breaks (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES work_sessions(id),
		break_start TEXT NOT NULL,
		break_end TEXT,
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	// Store-enforced invariant: at most one open break per session.
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_session_breaks_open
		ON session_breaks(session_id) WHERE break_end IS NULL`,

	`CREATE INDEX IF NOT EXISTS ix_session_breaks_session
		ON session_breaks(session_id, break_start)`,
}

// Migrate runs all schema migrations.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" from ALTER TABLE since
			// the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
