package capture

import "errors"

var (
	// ErrDenied indicates the monitoring agent refused to start
	// capture for the worker.
	ErrDenied = errors.New("capture denied")

	// ErrTimeout indicates the handshake did not complete within the
	// bounded wait.
	ErrTimeout = errors.New("capture handshake timed out")

	// ErrUnavailable indicates the monitoring agent is unreachable.
	ErrUnavailable = errors.New("capture agent unavailable")
)
