// Package interp smooths remote entity rendering by buffering timestamped
// positions and linearly interpolating between the two snapshots that
// bracket the render time.
package interp

import (
	"time"
)

// Sample is one timestamped position
type Sample struct {
	At time.Time
	X  float64
	Y  float64
}

// Buffer holds recent samples for one entity in chronological order
type Buffer struct {
	samples   []Sample
	retention time.Duration
	maxSize   int
}

// New creates a buffer that keeps at most maxSize samples no older than
// retention behind the newest
func New(retention time.Duration, maxSize int) *Buffer {
	return &Buffer{retention: retention, maxSize: maxSize}
}

// Add inserts a sample, keeping the buffer ordered even when packets
// arrive out of order
func (b *Buffer) Add(at time.Time, x, y float64) {
	s := Sample{At: at, X: x, Y: y}
	n := len(b.samples)
	if n == 0 || !at.Before(b.samples[n-1].At) {
		b.samples = append(b.samples, s)
	} else {
		i := n
		for i > 0 && at.Before(b.samples[i-1].At) {
			i--
		}
		b.samples = append(b.samples, Sample{})
		copy(b.samples[i+1:], b.samples[i:])
		b.samples[i] = s
	}
	b.prune()
}

func (b *Buffer) prune() {
	if n := len(b.samples); n > 0 && b.retention > 0 {
		cutoff := b.samples[n-1].At.Add(-b.retention)
		i := 0
		for i < n-1 && b.samples[i].At.Before(cutoff) {
			i++
		}
		b.samples = b.samples[i:]
	}
	for b.maxSize > 0 && len(b.samples) > b.maxSize {
		b.samples = b.samples[1:]
	}
}

// At returns the position for the given render time. Between two samples
// it interpolates linearly; outside the buffered range it holds the
// nearest endpoint rather than extrapolating. ok is false only when the
// buffer is empty.
func (b *Buffer) At(renderTime time.Time) (x, y float64, ok bool) {
	n := len(b.samples)
	if n == 0 {
		return 0, 0, false
	}

	first := b.samples[0]
	if renderTime.Before(first.At) {
		return first.X, first.Y, true
	}
	last := b.samples[n-1]
	if !renderTime.Before(last.At) {
		return last.X, last.Y, true
	}

	for i := 1; i < n; i++ {
		after := b.samples[i]
		if renderTime.Before(after.At) {
			before := b.samples[i-1]
			span := after.At.Sub(before.At).Seconds()
			if span <= 0 {
				return after.X, after.Y, true
			}
			t := renderTime.Sub(before.At).Seconds() / span
			return before.X + (after.X-before.X)*t, before.Y + (after.Y-before.Y)*t, true
		}
	}
	return last.X, last.Y, true
}

// Len returns the number of buffered samples
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Clear drops all samples
func (b *Buffer) Clear() {
	b.samples = nil
}
