// Package protocol defines the wire messages exchanged between server and
// client, as a closed set of tagged variants carried in a small JSON
// envelope. Unknown kinds are rejected at the decode boundary.
package protocol

import "github.com/mcoot/coincollector-go/internal/model"

// Kind tags a message variant on the wire
type Kind string

const (
	// Client -> server
	KindInput Kind = "input"

	// Server -> client
	KindAssign        Kind = "assign"
	KindWaiting       Kind = "waiting"
	KindMatchStart    Kind = "match_start"
	KindSnapshot      Kind = "snapshot"
	KindCoinCollected Kind = "coin_collected"
	KindPeerLeft      Kind = "peer_left"
	KindMatchEnd      Kind = "match_end"
	KindFull          Kind = "full"
)

// Input carries a client's directional intent. Components outside
// {-1, 0, 1} are invalid and the server drops the whole message.
type Input struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Valid reports whether both components are in {-1, 0, 1}
func (in Input) Valid() bool {
	return in.DX >= -1 && in.DX <= 1 && in.DY >= -1 && in.DY <= 1
}

// Assign tells a client which slot it occupies and where it spawned
type Assign struct {
	PlayerID model.PlayerID `json:"playerId"`
	Color    string         `json:"color"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
}

// Waiting tells a freshly joined client the lobby needs a second player
type Waiting struct {
	Message string `json:"message"`
}

// MatchStart announces the transition from lobby to play
type MatchStart struct {
	ServerTime int64 `json:"serverTime"` // unix milliseconds
}

// PlayerSnapshot is one player's state inside a Snapshot
type PlayerSnapshot struct {
	ID    model.PlayerID `json:"id"`
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
	Score int            `json:"score"`
	Color string         `json:"color"`
}

// CoinSnapshot is one active coin inside a Snapshot
type CoinSnapshot struct {
	ID model.CoinID `json:"id"`
	X  float64      `json:"x"`
	Y  float64      `json:"y"`
}

// Snapshot is the full authoritative state broadcast at the snapshot rate.
// There are no partial updates; each snapshot supersedes the previous one.
type Snapshot struct {
	Tick       uint64           `json:"tick"`
	ServerTime int64            `json:"serverTime"` // unix milliseconds
	Phase      model.MatchPhase `json:"phase"`
	Players    []PlayerSnapshot `json:"players"`
	Coins      []CoinSnapshot   `json:"coins"`
	GameTime   float64          `json:"gameTime"` // seconds since match start
}

// CoinCollected announces a verified collection event
type CoinCollected struct {
	PlayerID model.PlayerID `json:"playerId"`
	CoinID   model.CoinID   `json:"coinId"`
	NewScore int            `json:"newScore"`
}

// PeerLeft announces that the other player disconnected
type PeerLeft struct {
	PlayerID model.PlayerID `json:"playerId"`
}

// MatchEnd carries the single winner determination. Exactly one is sent
// per match.
type MatchEnd struct {
	Winner model.PlayerID         `json:"winner,omitempty"` // 0 on draw
	Draw   bool                   `json:"draw,omitempty"`
	Scores map[model.PlayerID]int `json:"scores"`
	Reason model.EndReason        `json:"reason"`
}

// Full refuses a connection because two players are already present
type Full struct {
	Message string `json:"message"`
}
