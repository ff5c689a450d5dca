package repository

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a write violated a store-enforced
	// invariant (active-session or open-break uniqueness).
	ErrConflict = errors.New("conflicting record exists")
)

// isConstraintViolation reports whether err is a SQLite unique or
// check constraint failure.
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "constraint failed")
}
