// Package game holds the authoritative match state and the fixed-rate
// simulation step. A State instance is owned by exactly one session
// goroutine; nothing here locks, and Advance is the only mutator once the
// match is playing.
package game

import (
	"sort"

	"github.com/mcoot/coincollector-go/internal/config"
	"github.com/mcoot/coincollector-go/internal/dependencies/random"
	"github.com/mcoot/coincollector-go/internal/geometry"
	"github.com/mcoot/coincollector-go/internal/model"
)

const (
	// initialCoinBurst is how many coins spawn the moment a match starts
	initialCoinBurst = 3
	// spawnKeepAway is the extra clearance a fresh coin keeps from players
	spawnKeepAway = 50.0
	// spawnAttempts bounds the keep-away retry loop; after this many tries
	// the coin spawns wherever the last roll landed
	spawnAttempts = 50
	// spawnEdgeMargin keeps coins off the very edge of the field
	spawnEdgeMargin = 10.0
	// playerSpawnMargin keeps initial player positions away from walls
	playerSpawnMargin = 50.0
)

// CoinCollected is a verified collection event produced by one tick
type CoinCollected struct {
	Player   model.PlayerID
	Coin     model.CoinID
	NewScore int
}

// State is the authoritative game state for one match
type State struct {
	cfg config.Config
	rnd random.Random

	phase      model.MatchPhase
	players    map[model.PlayerID]*model.Player
	coins      []*model.Coin // ascending CoinID
	nextCoinID model.CoinID

	tick       uint64
	elapsed    float64 // seconds since Start
	spawnAccum float64 // seconds since the last coin spawn

	result *model.MatchResult
}

// New creates an empty waiting-phase state
func New(cfg config.Config, rnd random.Random) *State {
	return &State{
		cfg:        cfg,
		rnd:        rnd,
		phase:      model.MatchPhaseWaiting,
		players:    make(map[model.PlayerID]*model.Player),
		nextCoinID: 1,
	}
}

// Phase returns the current match phase
func (s *State) Phase() model.MatchPhase {
	return s.phase
}

// Tick returns the number of completed simulation ticks
func (s *State) Tick() uint64 {
	return s.tick
}

// Elapsed returns seconds of play time so far
func (s *State) Elapsed() float64 {
	return s.elapsed
}

// Result returns the winner determination, or nil before the match ends
func (s *State) Result() *model.MatchResult {
	return s.result
}

// PlayerCount returns the number of players currently in the state
func (s *State) PlayerCount() int {
	return len(s.players)
}

// bounds returns the playable area
func (s *State) bounds() geometry.Bounds {
	return geometry.Bounds{Width: s.cfg.GameWidth, Height: s.cfg.GameHeight}
}

// AddPlayer places a player in a slot at a random spawn position away
// from the field edges
func (s *State) AddPlayer(id model.PlayerID) (*model.Player, error) {
	if !id.Valid() {
		return nil, model.ErrNotInMatch
	}
	lo := s.cfg.PlayerRadius + playerSpawnMargin
	p := &model.Player{
		ID:    id,
		X:     s.rnd.Float64InRange(lo, s.cfg.GameWidth-lo),
		Y:     s.rnd.Float64InRange(lo, s.cfg.GameHeight-lo),
		Color: id.Color(),
	}
	s.players[id] = p
	return p, nil
}

// RemovePlayer deletes a player from the state entirely
func (s *State) RemovePlayer(id model.PlayerID) {
	delete(s.players, id)
}

// Player returns the player in the given slot, or nil
func (s *State) Player(id model.PlayerID) *model.Player {
	return s.players[id]
}

// Players returns copies of all players in slot order
func (s *State) Players() []model.Player {
	out := make([]model.Player, 0, len(s.players))
	for _, id := range s.playerIDs() {
		out = append(out, *s.players[id])
	}
	return out
}

// Coins returns copies of all active coins in spawn order
func (s *State) Coins() []model.Coin {
	out := make([]model.Coin, 0, len(s.coins))
	for _, c := range s.coins {
		out = append(out, *c)
	}
	return out
}

// CoinCount returns the number of active coins
func (s *State) CoinCount() int {
	return len(s.coins)
}

// Start transitions the state to playing and spawns the opening coins
func (s *State) Start() {
	if s.phase != model.MatchPhaseWaiting {
		return
	}
	s.phase = model.MatchPhasePlaying
	s.elapsed = 0
	s.spawnAccum = 0
	for i := 0; i < initialCoinBurst && len(s.coins) < s.cfg.MaxCoins; i++ {
		s.spawnCoin()
	}
}

// SetInput stores a player's latest input intent. Vectors with components
// outside {-1, 0, 1} are rejected and the previous intent stays in effect.
func (s *State) SetInput(id model.PlayerID, dx, dy int) error {
	p, ok := s.players[id]
	if !ok {
		return model.ErrNotInMatch
	}
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return model.ErrInvalidInput
	}
	p.DX, p.DY = dx, dy
	return nil
}

// playerIDs returns the occupied slots in ascending order. Collision
// resolution depends on this order being stable.
func (s *State) playerIDs() []model.PlayerID {
	ids := make([]model.PlayerID, 0, len(s.players))
	for id := range s.players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// spawnCoin places one coin at a random in-bounds position, retrying a
// bounded number of times to keep clear of both players
func (s *State) spawnCoin() *model.Coin {
	if len(s.coins) >= s.cfg.MaxCoins {
		return nil
	}
	lo := s.cfg.CoinRadius + spawnEdgeMargin
	var x, y float64
	for attempt := 0; attempt < spawnAttempts; attempt++ {
		x = s.rnd.Float64InRange(lo, s.cfg.GameWidth-lo)
		y = s.rnd.Float64InRange(lo, s.cfg.GameHeight-lo)
		if s.clearOfPlayers(x, y) {
			break
		}
	}
	coin := &model.Coin{ID: s.nextCoinID, X: x, Y: y}
	s.nextCoinID++
	s.coins = append(s.coins, coin)
	return coin
}

// clearOfPlayers reports whether a spawn position keeps the keep-away
// distance from every player
func (s *State) clearOfPlayers(x, y float64) bool {
	keepAway := s.cfg.PlayerRadius + s.cfg.CoinRadius + spawnKeepAway
	for _, p := range s.players {
		if geometry.CirclesOverlap(x, y, keepAway, p.X, p.Y, 0) {
			return false
		}
	}
	return true
}
