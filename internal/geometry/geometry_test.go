package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testBounds = Bounds{Width: 800, Height: 600}

func TestClampCircleKeepsCircleInside(t *testing.T) {
	x, y := ClampCircle(-20, 700, 15, testBounds)
	assert.Equal(t, 15.0, x)
	assert.Equal(t, 585.0, y)

	x, y = ClampCircle(400, 300, 15, testBounds)
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 300.0, y)
}

func TestCirclesOverlap(t *testing.T) {
	assert.True(t, CirclesOverlap(0, 0, 15, 20, 0, 10))
	// Touching exactly is not an overlap
	assert.False(t, CirclesOverlap(0, 0, 15, 25, 0, 10))
	assert.False(t, CirclesOverlap(0, 0, 15, 100, 100, 10))
}

func TestNormalizeInputDiagonalIsUnitLength(t *testing.T) {
	nx, ny := NormalizeInput(1, 1)
	assert.InDelta(t, 1.0, math.Hypot(nx, ny), 1e-9)

	nx, ny = NormalizeInput(-1, 0)
	assert.Equal(t, -1.0, nx)
	assert.Equal(t, 0.0, ny)

	nx, ny = NormalizeInput(0, 0)
	assert.Equal(t, 0.0, nx)
	assert.Equal(t, 0.0, ny)
}

func TestMoveStepAxisAndDiagonalCoverSameDistance(t *testing.T) {
	x1, _ := MoveStep(400, 300, 1, 0, 200, 0.1, 15, testBounds)
	assert.InDelta(t, 420.0, x1, 1e-9)

	x2, y2 := MoveStep(400, 300, 1, 1, 200, 0.1, 15, testBounds)
	dist := math.Hypot(x2-400, y2-300)
	assert.InDelta(t, 20.0, dist, 1e-9)
}

func TestMoveStepClampsAtEdge(t *testing.T) {
	x, y := MoveStep(790, 300, 1, 0, 200, 1.0, 15, testBounds)
	assert.Equal(t, 785.0, x)
	assert.Equal(t, 300.0, y)
}

func TestMoveStepZeroInputHoldsPosition(t *testing.T) {
	x, y := MoveStep(123, 456, 0, 0, 200, 0.5, 15, testBounds)
	assert.Equal(t, 123.0, x)
	assert.Equal(t, 456.0, y)
}
