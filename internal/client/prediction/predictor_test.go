package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/coincollector-go/internal/geometry"
)

func newTestPredictor() *Predictor {
	p := New(200, 15, geometry.Bounds{Width: 800, Height: 600})
	p.SetPosition(400, 300)
	return p
}

func TestUpdateMatchesServerMovementRule(t *testing.T) {
	p := newTestPredictor()
	p.SetInput(0, -1)

	// Half a second of constant input in client-sized steps must land
	// exactly where the server's integration lands
	sx, sy := 400.0, 300.0
	dt := 1.0 / 60.0
	for i := 0; i < 30; i++ {
		p.Update(dt)
		sx, sy = geometry.MoveStep(sx, sy, 0, -1, 200, dt, 15, geometry.Bounds{Width: 800, Height: 600})
	}

	x, y := p.Position()
	assert.InDelta(t, sx, x, 1e-9)
	assert.InDelta(t, sy, y, 1e-9)
	assert.InDelta(t, 200.0, y, 1e-9) // moved 100px up
}

func TestUpdateClampsToBounds(t *testing.T) {
	p := newTestPredictor()
	p.SetPosition(20, 20)
	p.SetInput(-1, -1)

	for i := 0; i < 120; i++ {
		p.Update(1.0 / 60.0)
	}

	x, y := p.Position()
	assert.Equal(t, 15.0, x)
	assert.Equal(t, 15.0, y)
}

func TestApplyServerTrustsSmallDivergence(t *testing.T) {
	p := newTestPredictor()

	// 50px behind is within the expected latency drift
	p.ApplyServer(350, 300)

	x, y := p.Position()
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 300.0, y)
}

func TestApplyServerCorrectsModerateDivergenceGradually(t *testing.T) {
	p := newTestPredictor()

	// 120px off: correct only the 20px excess, scaled down
	p.ApplyServer(280, 300)

	x, y := p.Position()
	assert.Less(t, x, 400.0)
	assert.Greater(t, x, 398.0)
	assert.Equal(t, 300.0, y)
}

func TestApplyServerSnapsOnLargeDivergence(t *testing.T) {
	p := newTestPredictor()

	p.ApplyServer(100, 100)

	x, y := p.Position()
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 100.0, y)
}

func TestRepeatedCorrectionsConverge(t *testing.T) {
	p := newTestPredictor()

	// A stationary server position with repeated corrections pulls the
	// prediction back inside the drift window
	for i := 0; i < 500; i++ {
		p.ApplyServer(260, 300)
	}

	x, _ := p.Position()
	assert.Less(t, x-260, MaxDrift+1)
}
