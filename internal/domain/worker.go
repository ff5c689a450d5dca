package domain

import "time"

// Worker is an identity reference. Worker accounts are owned by the
// surrounding application; this core only keys sessions by their id.
type Worker struct {
	ID          string
	DisplayName string
	CreatedAt   time.Time
}
