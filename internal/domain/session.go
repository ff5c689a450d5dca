package domain

import "time"

// Session is one clock-in-to-clock-out work period for a worker.
// TotalWorkSeconds/TotalBreakSeconds are a persisted snapshot and are
// authoritative only once Status is SessionCompleted; while the
// session is active, live totals come from WorkSeconds/BreakSeconds.
type Session struct {
	ID        string
	WorkerID  string
	AttemptID string
	ClockIn   time.Time
	ClockOut  *time.Time // nil while active
	Status    SessionStatus

	TotalWorkSeconds  int64
	TotalBreakSeconds int64

	CreatedAt time.Time

	// Breaks are attached by the store when the session is loaded with
	// its break history; repositories keep them ordered by break_start.
	Breaks []*Break
}

// Break is one rest interval within a session. Immutable once closed.
type Break struct {
	ID              string
	SessionID       string
	Start           time.Time
	End             *time.Time // nil while ongoing
	DurationSeconds int64
	CreatedAt       time.Time
}

// Open reports whether the break is still ongoing.
func (b *Break) Open() bool {
	return b.End == nil
}

// OpenBreak returns the session's ongoing break, or nil.
func (s *Session) OpenBreak() *Break {
	for _, b := range s.Breaks {
		if b.Open() {
			return b
		}
	}
	return nil
}

// BreakSeconds returns the break time accrued as of now: the sum of
// closed break durations plus the elapsed portion of an open break.
func (s *Session) BreakSeconds(now time.Time) int64 {
	var total int64
	for _, b := range s.Breaks {
		if b.End != nil {
			total += b.DurationSeconds
			continue
		}
		if open := int64(now.Sub(b.Start).Seconds()); open > 0 {
			total += open
		}
	}
	return total
}

// WorkSeconds returns the work time accrued as of now: wall time since
// clock-in minus break time. Clamped at zero so clock skew or a
// corrupt anchor never yields negative elapsed time.
func (s *Session) WorkSeconds(now time.Time) int64 {
	elapsed := int64(now.Sub(s.ClockIn).Seconds())
	work := elapsed - s.BreakSeconds(now)
	if work < 0 {
		return 0
	}
	return work
}

// Completed reports whether the session has been clocked out.
func (s *Session) Completed() bool {
	return s.Status == SessionCompleted
}
