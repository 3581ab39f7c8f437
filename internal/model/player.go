package model

// PlayerID identifies one of the two player slots in a match
type PlayerID int

const (
	// PlayerOne is the first slot (blue)
	PlayerOne PlayerID = 1
	// PlayerTwo is the second slot (red)
	PlayerTwo PlayerID = 2
)

// Valid reports whether the ID is one of the two real slots
func (id PlayerID) Valid() bool {
	return id == PlayerOne || id == PlayerTwo
}

// Color returns the display color bound to this slot
func (id PlayerID) Color() string {
	switch id {
	case PlayerOne:
		return "blue"
	case PlayerTwo:
		return "red"
	default:
		return "gray"
	}
}

// Other returns the opposing slot
func (id PlayerID) Other() PlayerID {
	if id == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// Player is the authoritative server-side state for one player.
// Owned exclusively by the game state; clients only ever see it through
// snapshots, except for the local player's predicted copy.
type Player struct {
	ID    PlayerID
	X     float64
	Y     float64
	DX    int // latest input intent: -1, 0 or 1
	DY    int
	Score int
	Color string
}
