// Package geometry holds the physics primitives shared by the server
// simulation and the client predictor. Both sides integrate movement with
// the same rule so a prediction only diverges from the authoritative
// position by network delay, never by arithmetic.
package geometry

import "math"

// Bounds describes the playable area. Entities are clamped so their whole
// circle stays inside it.
type Bounds struct {
	Width  float64
	Height float64
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampCircle clamps a circle center so the circle lies fully in bounds
func ClampCircle(x, y, radius float64, b Bounds) (float64, float64) {
	return Clamp(x, radius, b.Width-radius), Clamp(y, radius, b.Height-radius)
}

// CirclesOverlap reports whether two circles intersect. Touching circles
// (distance exactly equal to the radius sum) do not count as overlapping.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx+dy*dy) < r1+r2
}

// NormalizeInput scales a directional intent (each component -1, 0 or 1)
// to a unit vector so diagonal movement is not faster than axis movement.
// A zero intent stays zero.
func NormalizeInput(dx, dy int) (float64, float64) {
	if dx == 0 && dy == 0 {
		return 0, 0
	}
	mag := math.Sqrt(float64(dx*dx + dy*dy))
	return float64(dx) / mag, float64(dy) / mag
}

// MoveStep advances a position by one integration step: the input intent
// is normalized, scaled by speed and dt, and the result clamped into
// bounds. This is the movement rule for both authoritative ticks and
// client-side prediction.
func MoveStep(x, y float64, dx, dy int, speed, dt, radius float64, b Bounds) (float64, float64) {
	nx, ny := NormalizeInput(dx, dy)
	if nx == 0 && ny == 0 {
		return x, y
	}
	return ClampCircle(x+nx*speed*dt, y+ny*speed*dt, radius, b)
}
