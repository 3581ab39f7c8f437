package clock

import "time"

// Clock provides time operations that can be mocked for testing.
// The simulation loop, latency queues and interpolation buffers all take
// their notion of "now" from here so tests never have to sleep.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
