package service

import "errors"

// Transition validation errors are terminal for the requested
// operation: they indicate a genuine precondition violation and are
// surfaced to the caller unchanged, never retried.
var (
	// ErrAlreadyActive indicates the worker already has an active session.
	ErrAlreadyActive = errors.New("worker already has an active session")

	// ErrNotActive indicates the session is not active (completed or missing).
	ErrNotActive = errors.New("session is not active")

	// ErrBreakAlreadyOpen indicates the session already has an open break.
	ErrBreakAlreadyOpen = errors.New("session already has an open break")

	// ErrNoOpenBreak indicates there is no open break to end.
	ErrNoOpenBreak = errors.New("no open break")

	// ErrBreakInProgress blocks clock-out while a break is open; the
	// caller must end the break first.
	ErrBreakInProgress = errors.New("break in progress, end it before clocking out")

	// ErrCaptureDenied indicates the monitoring handshake refused the
	// clock-in. No session exists after this error.
	ErrCaptureDenied = errors.New("capture denied")

	// ErrCaptureTimeout indicates the monitoring handshake did not
	// complete within the bounded wait. No session exists after this error.
	ErrCaptureTimeout = errors.New("capture timed out")

	// ErrPersistenceFailed indicates a store write failed with the
	// state machine left at its pre-transition state. The only error
	// in this taxonomy eligible for caller-driven retry; retried
	// clock-ins are idempotent per attempt id.
	ErrPersistenceFailed = errors.New("persistence failed")
)
