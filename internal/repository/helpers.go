package repository

import (
	"database/sql"
	"time"
)

// parseNullableTime parses a sql.NullString into a *time.Time.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for
// SQLite storage: SQL NULL for nil, RFC3339 otherwise.
func nullableTimeToString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
