package model

// CoinID uniquely identifies a coin within a match. IDs are assigned in
// spawn order and never reused, which gives collision checks a stable
// iteration order.
type CoinID int

// Coin is a collectible on the field. A coin that has been collected is
// removed from the game state entirely; there is no inactive-but-present
// representation.
type Coin struct {
	ID CoinID
	X  float64
	Y  float64
}
