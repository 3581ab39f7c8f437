package model

import "time"

// MatchID uniquely identifies a match
type MatchID string

// MatchPhase represents the current phase of a match
type MatchPhase string

const (
	MatchPhaseWaiting MatchPhase = "waiting" // Lobby: waiting for two players
	MatchPhasePlaying MatchPhase = "playing" // Simulation running
	MatchPhaseEnded   MatchPhase = "ended"   // Terminal
)

// EndReason records why a match terminated
type EndReason string

const (
	EndReasonScore      EndReason = "score"      // A player reached the winning score
	EndReasonTimeout    EndReason = "timeout"    // The match duration elapsed
	EndReasonDisconnect EndReason = "disconnect" // A peer dropped mid-match
)

// MatchResult is the single winner determination made at match end
type MatchResult struct {
	Winner PlayerID // 0 when Draw
	Draw   bool
	Scores map[PlayerID]int
	Reason EndReason
}

// MatchSummary is a lightweight record of a completed match
type MatchSummary struct {
	ID       MatchID
	Result   MatchResult
	Duration time.Duration
	EndedAt  time.Time
}
