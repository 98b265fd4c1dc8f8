// Package clock abstracts the time source so cache expiry is testable.
package clock

import "time"

// Clock yields the current time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// MockClock is a manually-advanced clock for tests.
type MockClock struct {
	Current time.Time
}

func (c *MockClock) Now() time.Time { return c.Current }

// Advance moves the mock clock forward by d.
func (c *MockClock) Advance(d time.Duration) { c.Current = c.Current.Add(d) }

var _ Clock = RealClock{}
var _ Clock = (*MockClock)(nil)
