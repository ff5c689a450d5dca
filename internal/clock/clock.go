package clock

import "time"

// Clock supplies the current time for all elapsed-time math.
// Injecting it keeps the calculator and services testable without
// mocking the wall clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns a Clock backed by the wall clock, in UTC.
func System() Clock {
	return systemClock{}
}
