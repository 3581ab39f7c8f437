package interp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestAtInterpolatesBetweenBracketingSamples(t *testing.T) {
	b := New(time.Second, 20)
	b.Add(t0, 100, 200)
	b.Add(t0.Add(100*time.Millisecond), 200, 400)

	x, y, ok := b.At(t0.Add(50 * time.Millisecond))
	require.True(t, ok)
	assert.InDelta(t, 150, x, 1e-9)
	assert.InDelta(t, 300, y, 1e-9)

	// Quarter of the way through
	x, y, ok = b.At(t0.Add(25 * time.Millisecond))
	require.True(t, ok)
	assert.InDelta(t, 125, x, 1e-9)
	assert.InDelta(t, 250, y, 1e-9)
}

func TestAtHoldsEndpointsWithoutExtrapolating(t *testing.T) {
	b := New(time.Second, 20)
	b.Add(t0, 100, 100)
	b.Add(t0.Add(100*time.Millisecond), 200, 100)

	// Before the first sample
	x, _, ok := b.At(t0.Add(-time.Second))
	require.True(t, ok)
	assert.Equal(t, 100.0, x)

	// After the last sample the position freezes; it never projects
	// past buffered data
	x, _, ok = b.At(t0.Add(5 * time.Second))
	require.True(t, ok)
	assert.Equal(t, 200.0, x)
}

func TestAtEmptyBuffer(t *testing.T) {
	b := New(time.Second, 20)
	_, _, ok := b.At(t0)
	assert.False(t, ok)
}

func TestAddKeepsOutOfOrderSamplesSorted(t *testing.T) {
	b := New(time.Second, 20)
	b.Add(t0, 0, 0)
	b.Add(t0.Add(200*time.Millisecond), 200, 0)
	b.Add(t0.Add(100*time.Millisecond), 100, 0) // late arrival

	x, _, ok := b.At(t0.Add(150 * time.Millisecond))
	require.True(t, ok)
	assert.InDelta(t, 150, x, 1e-9)
}

func TestRetentionDropsStaleSamples(t *testing.T) {
	b := New(time.Second, 20)
	b.Add(t0, 0, 0)
	b.Add(t0.Add(3*time.Second), 300, 0)

	assert.Equal(t, 1, b.Len())
	x, _, ok := b.At(t0)
	require.True(t, ok)
	assert.Equal(t, 300.0, x)
}

func TestMaxSizeEvictsOldest(t *testing.T) {
	b := New(time.Minute, 3)
	for i := 0; i < 5; i++ {
		b.Add(t0.Add(time.Duration(i)*time.Millisecond), float64(i), 0)
	}

	require.Equal(t, 3, b.Len())
	x, _, ok := b.At(t0)
	require.True(t, ok)
	assert.Equal(t, 2.0, x) // oldest surviving sample
}

func TestClear(t *testing.T) {
	b := New(time.Second, 20)
	b.Add(t0, 1, 2)
	b.Clear()
	assert.Equal(t, 0, b.Len())
}
