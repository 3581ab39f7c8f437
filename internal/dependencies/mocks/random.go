package mocks

import (
	"math"

	"github.com/mcoot/coincollector-go/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// FloatResults is a queue of results to return from Float64InRange
	FloatResults []float64
	floatIndex   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Float64InRange returns the next queued result clamped to [lo, hi),
// or lo if none remaining. A queued value at or above hi clamps to the
// largest float64 below hi so the half-open contract holds.
func (r *MockRandom) Float64InRange(lo, hi float64) float64 {
	if r.floatIndex >= len(r.FloatResults) {
		return lo
	}
	result := r.FloatResults[r.floatIndex]
	r.floatIndex++
	if result < lo {
		return lo
	}
	if result >= hi {
		return math.Nextafter(hi, lo)
	}
	return result
}

// QueueFloat adds values to the Float64InRange result queue
func (r *MockRandom) QueueFloat(values ...float64) {
	r.FloatResults = append(r.FloatResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.FloatResults = nil
	r.floatIndex = 0
}
