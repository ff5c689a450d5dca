package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_AppliesSchema(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"workers", "work_sessions", "session_breaks"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrate_Rerunnable(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	assert.NoError(t, Migrate(database))
}

func TestSchema_SingleActiveSessionPerWorker(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO workers (id, display_name, created_at) VALUES ('w1', 'Ada', '2026-01-05T09:00:00Z')`)
	require.NoError(t, err)

	insert := `INSERT INTO work_sessions (id, worker_id, attempt_id, clock_in, status, created_at)
		VALUES (?, 'w1', ?, '2026-01-05T09:00:00Z', 'active', '2026-01-05T09:00:00Z')`
	_, err = database.Exec(insert, "s1", "a1")
	require.NoError(t, err)

	_, err = database.Exec(insert, "s2", "a2")
	assert.Error(t, err, "second active session for the same worker must violate ux_work_sessions_active")
}

func TestSchema_SingleOpenBreakPerSession(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO workers (id, display_name, created_at) VALUES ('w1', 'Ada', '2026-01-05T09:00:00Z')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO work_sessions (id, worker_id, attempt_id, clock_in, status, created_at)
		VALUES ('s1', 'w1', 'a1', '2026-01-05T09:00:00Z', 'active', '2026-01-05T09:00:00Z')`)
	require.NoError(t, err)

	insert := `INSERT INTO session_breaks (id, session_id, break_start, created_at)
		VALUES (?, 's1', '2026-01-05T10:00:00Z', '2026-01-05T10:00:00Z')`
	_, err = database.Exec(insert, "b1")
	require.NoError(t, err)

	_, err = database.Exec(insert, "b2")
	assert.Error(t, err, "second open break for the same session must violate ux_session_breaks_open")
}
