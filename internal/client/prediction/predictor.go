// Package prediction moves the local player immediately on input, using
// the same step rule as the server, and reconciles against authoritative
// snapshots as they arrive.
package prediction

import (
	"math"

	"github.com/mcoot/coincollector-go/internal/geometry"
)

const (
	// MaxDrift is how far prediction may run ahead of the last server
	// position before corrections kick in. With the simulated round trip
	// the server echo lags the prediction by hundreds of milliseconds,
	// so a healthy match still shows tens of pixels of divergence.
	MaxDrift = 100.0
	// SnapThreshold is the divergence beyond which the predictor stops
	// correcting smoothly and jumps to the server position
	SnapThreshold = 150.0
	// ReconcileFactor scales each smooth correction step
	ReconcileFactor = 0.05
)

// Predictor integrates local input into a predicted position
type Predictor struct {
	speed  float64
	radius float64
	bounds geometry.Bounds

	x, y   float64
	dx, dy int

	serverX, serverY float64
}

// New creates a predictor for a player of the given speed and radius
func New(speed, radius float64, bounds geometry.Bounds) *Predictor {
	return &Predictor{speed: speed, radius: radius, bounds: bounds}
}

// SetPosition initializes both predicted and server positions
func (p *Predictor) SetPosition(x, y float64) {
	p.x, p.y = x, y
	p.serverX, p.serverY = x, y
}

// SetInput stores the current directional intent
func (p *Predictor) SetInput(dx, dy int) {
	p.dx, p.dy = dx, dy
}

// Input returns the current directional intent
func (p *Predictor) Input() (dx, dy int) {
	return p.dx, p.dy
}

// Update advances the predicted position by dt seconds using the same
// movement rule the server applies
func (p *Predictor) Update(dt float64) {
	p.x, p.y = geometry.MoveStep(p.x, p.y, p.dx, p.dy, p.speed, dt, p.radius, p.bounds)
}

// ApplyServer reconciles the prediction against an authoritative
// position. Small divergence is trusted entirely, moderate divergence is
// corrected gradually, and anything past SnapThreshold snaps.
func (p *Predictor) ApplyServer(serverX, serverY float64) {
	p.serverX, p.serverY = serverX, serverY

	dx := serverX - p.x
	dy := serverY - p.y
	distance := math.Hypot(dx, dy)

	switch {
	case distance > SnapThreshold:
		p.x, p.y = serverX, serverY
	case distance > MaxDrift:
		// Only correct the excess beyond the allowed drift
		strength := (distance - MaxDrift) / distance
		p.x += dx * strength * ReconcileFactor
		p.y += dy * strength * ReconcileFactor
	}
}

// Position returns the current predicted position
func (p *Predictor) Position() (x, y float64) {
	return p.x, p.y
}
