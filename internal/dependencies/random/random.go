package random

import (
	"crypto/rand"
	"math/big"
)

// Random provides random number generation that can be mocked for testing
type Random interface {
	// Float64InRange returns a random float64 in [lo, hi)
	Float64InRange(lo, hi float64) float64
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// floatScale maps a random integer onto [0, 1) with full float64 precision
const floatScale = 1 << 53

// Float64InRange returns a random float64 uniformly distributed in [lo, hi)
func (r *CryptoRandom) Float64InRange(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	n, err := rand.Int(rand.Reader, big.NewInt(floatScale))
	if err != nil {
		return lo
	}
	frac := float64(n.Int64()) / floatScale
	return lo + frac*(hi-lo)
}
