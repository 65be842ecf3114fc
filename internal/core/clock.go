package core

import "time"

// Clock supplies the current time. It is injected so that date defaults stay
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Today returns the clock's current local calendar date.
func Today(clock Clock) Date {
	if clock == nil {
		clock = SystemClock{}
	}
	return DateOf(clock.Now())
}
