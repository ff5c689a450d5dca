package domain

// Aggregate is a derived sum of work and break seconds over a day or
// arbitrary range for one worker. Never persisted; recomputed on
// demand from session and break records plus the current clock.
type Aggregate struct {
	WorkerID          string
	WorkSeconds       int64
	BreakSeconds      int64
	CompletedSessions int
	// LiveSession is true when an active session contributed to the
	// totals, meaning they will keep growing on the next read.
	LiveSession bool
}

// Add folds a session's final totals into the aggregate.
func (a *Aggregate) Add(s *Session) {
	a.WorkSeconds += s.TotalWorkSeconds
	a.BreakSeconds += s.TotalBreakSeconds
	a.CompletedSessions++
}
