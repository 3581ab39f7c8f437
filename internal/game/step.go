package game

import (
	"github.com/mcoot/coincollector-go/internal/geometry"
	"github.com/mcoot/coincollector-go/internal/model"
)

// Advance runs one simulation tick of dt seconds: apply buffered intents
// to positions, resolve coin collisions, spawn coins on cadence, and
// check termination. It returns the collection events the tick produced.
//
// Collision order is player-id ascending then coin-id ascending, so when
// both players cover the same coin in one tick the lower slot claims it
// and the coin cannot be collected twice.
func (s *State) Advance(dt float64) []CoinCollected {
	if s.phase != model.MatchPhasePlaying || dt <= 0 {
		return nil
	}
	s.tick++
	s.elapsed += dt

	if d := s.cfg.MatchDuration; d > 0 && s.elapsed >= d.Seconds() {
		s.endByTime()
		return nil
	}

	b := s.bounds()
	for _, id := range s.playerIDs() {
		p := s.players[id]
		p.X, p.Y = geometry.MoveStep(p.X, p.Y, p.DX, p.DY, s.cfg.PlayerSpeed, dt, s.cfg.PlayerRadius, b)
	}

	events := s.resolveCollisions()

	if s.phase == model.MatchPhasePlaying {
		s.spawnAccum += dt
		if s.spawnAccum >= s.cfg.CoinSpawnInterval.Seconds() && len(s.coins) < s.cfg.MaxCoins {
			s.spawnCoin()
			s.spawnAccum = 0
		}
	}

	return events
}

// resolveCollisions awards each overlapped coin to the first player in
// iteration order, removes claimed coins, and ends the match as soon as
// a score reaches the winning threshold
func (s *State) resolveCollisions() []CoinCollected {
	var events []CoinCollected
	claimed := make(map[model.CoinID]bool)

	for _, id := range s.playerIDs() {
		p := s.players[id]
		for _, c := range s.coins {
			if claimed[c.ID] {
				continue
			}
			if !geometry.CirclesOverlap(p.X, p.Y, s.cfg.PlayerRadius, c.X, c.Y, s.cfg.CoinRadius) {
				continue
			}
			claimed[c.ID] = true
			p.Score++
			events = append(events, CoinCollected{Player: p.ID, Coin: c.ID, NewScore: p.Score})
			if s.cfg.WinningScore > 0 && p.Score >= s.cfg.WinningScore {
				s.endByScore(p.ID)
				break
			}
		}
		if s.phase != model.MatchPhasePlaying {
			break
		}
	}

	if len(claimed) > 0 {
		kept := s.coins[:0]
		for _, c := range s.coins {
			if !claimed[c.ID] {
				kept = append(kept, c)
			}
		}
		s.coins = kept
	}
	return events
}

// endByScore finalizes a win-by-threshold
func (s *State) endByScore(winner model.PlayerID) {
	s.finish(model.MatchResult{
		Winner: winner,
		Scores: s.scores(),
		Reason: model.EndReasonScore,
	})
}

// endByTime finalizes at the time limit: highest score wins, equal
// scores are a draw
func (s *State) endByTime() {
	res := model.MatchResult{Scores: s.scores(), Reason: model.EndReasonTimeout}

	best, bestScore, tied := model.PlayerID(0), -1, false
	for _, id := range s.playerIDs() {
		score := s.players[id].Score
		switch {
		case score > bestScore:
			best, bestScore, tied = id, score, false
		case score == bestScore:
			tied = true
		}
	}
	if tied || best == 0 {
		res.Draw = true
	} else {
		res.Winner = best
	}
	s.finish(res)
}

// EndByDisconnect terminates the match because a peer dropped. The
// remaining player takes the win by forfeit.
func (s *State) EndByDisconnect(leaver model.PlayerID) {
	if s.phase != model.MatchPhasePlaying {
		return
	}
	res := model.MatchResult{Scores: s.scores(), Reason: model.EndReasonDisconnect}
	if remaining := leaver.Other(); s.players[remaining] != nil {
		res.Winner = remaining
	} else {
		res.Draw = true
	}
	s.finish(res)
}

// finish records the single winner determination and moves to Ended
func (s *State) finish(res model.MatchResult) {
	if s.phase == model.MatchPhaseEnded {
		return
	}
	s.phase = model.MatchPhaseEnded
	s.result = &res
}

func (s *State) scores() map[model.PlayerID]int {
	out := make(map[model.PlayerID]int, len(s.players))
	for id, p := range s.players {
		out[id] = p.Score
	}
	return out
}
