package transport

import (
	"sync"
	"time"
)

type delayed[T any] struct {
	releaseAt time.Time
	value     T
}

// DelayQueue holds values for a fixed delay before releasing them. The
// delay is identical for every value, so release order is push order:
// the queue simulates latency without reordering or loss.
//
// Time is passed in by the caller rather than read from a clock, which
// keeps the queue deterministic under test.
type DelayQueue[T any] struct {
	mu    sync.Mutex
	delay time.Duration
	items []delayed[T]
}

// NewDelayQueue creates a queue that releases values delay after they
// are pushed. A zero delay releases values on the next pop.
func NewDelayQueue[T any](delay time.Duration) *DelayQueue[T] {
	return &DelayQueue[T]{delay: delay}
}

// Push enqueues a value to be released at now plus the queue's delay.
func (q *DelayQueue[T]) Push(now time.Time, v T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, delayed[T]{releaseAt: now.Add(q.delay), value: v})
}

// PopReady removes and returns every value whose release time has
// arrived, in the order they were pushed.
func (q *DelayQueue[T]) PopReady(now time.Time) []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for n < len(q.items) && !q.items[n].releaseAt.After(now) {
		n++
	}
	if n == 0 {
		return nil
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = q.items[i].value
	}
	q.items = q.items[n:]
	return out
}

// Len returns the number of values still held.
func (q *DelayQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Clear discards all held values.
func (q *DelayQueue[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}
