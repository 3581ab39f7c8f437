// Package session runs server-side matches. Each Session owns one match:
// a single goroutine drives the simulation tick, applies delayed inbound
// inputs, broadcasts snapshots, and releases delayed outbound messages.
// All mutation happens on that goroutine; other goroutines talk to it
// through the inbox or the inbound delay queue.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/coincollector-go/internal/config"
	"github.com/mcoot/coincollector-go/internal/dependencies/clock"
	"github.com/mcoot/coincollector-go/internal/dependencies/random"
	"github.com/mcoot/coincollector-go/internal/game"
	"github.com/mcoot/coincollector-go/internal/model"
	"github.com/mcoot/coincollector-go/internal/protocol"
	"github.com/mcoot/coincollector-go/internal/storage"
	"github.com/mcoot/coincollector-go/internal/transport"
)

const inboxSize = 64

// timedInput is a client input travelling through the simulated uplink
type timedInput struct {
	player model.PlayerID
	input  protocol.Input
}

type peer struct {
	id   model.PlayerID
	conn *transport.DelayedConn
}

type joinCmd struct {
	conn  transport.Conn
	reply chan joinReply
}

type joinReply struct {
	player model.PlayerID
	err    error
}

type leaveCmd struct {
	player model.PlayerID
}

// Session is the authoritative side of one match
type Session struct {
	id  model.MatchID
	cfg config.Config
	log *slog.Logger
	clk clock.Clock

	state   *game.State
	peers   map[model.PlayerID]*peer
	inbound *transport.DelayQueue[timedInput]
	inbox   chan any
	store   storage.Storage

	broadcastEvery uint64
	saved          bool

	done chan struct{}
}

// New creates a session in the lobby phase with no players
func New(cfg config.Config, logger *slog.Logger, clk clock.Clock, rnd random.Random, store storage.Storage) *Session {
	id := model.MatchID(uuid.NewString())
	// Snapshots go out every Nth tick; Validate guarantees the rates
	// divide sensibly
	broadcastEvery := uint64(cfg.TickRate / cfg.BroadcastRate)
	if broadcastEvery == 0 {
		broadcastEvery = 1
	}
	return &Session{
		id:      id,
		cfg:     cfg,
		log:     logger.With("match_id", string(id)),
		clk:     clk,
		state:   game.New(cfg, rnd),
		peers:   make(map[model.PlayerID]*peer),
		inbound: transport.NewDelayQueue[timedInput](cfg.NetworkDelay),
		inbox:   make(chan any, inboxSize),
		store:   store,

		broadcastEvery: broadcastEvery,

		done: make(chan struct{}),
	}
}

// ID returns the match identifier
func (s *Session) ID() model.MatchID {
	return s.id
}

// Done is closed once the match has ended and every pending delayed
// message has been flushed or discarded
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Join asks the session to seat a connection. It blocks until the
// session goroutine replies or ctx is cancelled. ErrMatchFull means
// both slots are taken; ErrMatchEnded means the match is over.
func (s *Session) Join(ctx context.Context, conn transport.Conn) (model.PlayerID, error) {
	reply := make(chan joinReply, 1)
	select {
	case s.inbox <- joinCmd{conn: conn, reply: reply}:
	case <-s.done:
		return 0, model.ErrMatchEnded
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	select {
	case r := <-reply:
		return r.player, r.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Leave reports that a player's connection is gone
func (s *Session) Leave(player model.PlayerID) {
	select {
	case s.inbox <- leaveCmd{player: player}:
	case <-s.done:
	}
}

// HandleInput feeds one decoded input into the simulated uplink. It is
// safe to call from read goroutines; the input takes effect after the
// network delay, at the next tick boundary.
func (s *Session) HandleInput(player model.PlayerID, in protocol.Input) {
	if !in.Valid() {
		s.log.Debug("dropping invalid input", "player", int(player), "dx", in.DX, "dy", in.DY)
		return
	}
	s.inbound.Push(s.clk.Now(), timedInput{player: player, input: in})
}

// Run drives the session at the configured tick rate until the match
// finishes or ctx is cancelled. It closes all peer connections on exit.
func (s *Session) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickInterval())
	defer ticker.Stop()

	dt := s.cfg.TickInterval().Seconds()
	for {
		select {
		case <-ctx.Done():
			s.teardown()
			return
		case cmd := <-s.inbox:
			s.handleCommand(cmd)
		case <-ticker.C:
			if s.step(s.clk.Now(), dt) {
				s.teardown()
				return
			}
		}
	}
}

func (s *Session) handleCommand(cmd any) {
	now := s.clk.Now()
	switch c := cmd.(type) {
	case joinCmd:
		s.handleJoin(c, now)
	case leaveCmd:
		s.handleLeave(c.player, now)
	}
}

func (s *Session) handleJoin(cmd joinCmd, now time.Time) {
	if s.state.Phase() == model.MatchPhaseEnded {
		cmd.reply <- joinReply{err: model.ErrMatchEnded}
		return
	}
	slot := s.freeSlot()
	if !slot.Valid() {
		cmd.reply <- joinReply{err: model.ErrMatchFull}
		return
	}

	p, err := s.state.AddPlayer(slot)
	if err != nil {
		cmd.reply <- joinReply{err: err}
		return
	}
	s.peers[slot] = &peer{
		id:   slot,
		conn: transport.NewDelayedConn(cmd.conn, s.cfg.NetworkDelay),
	}
	s.log.Info("player joined", "player", int(slot))

	s.sendTo(slot, now, protocol.KindAssign, protocol.Assign{
		PlayerID: slot,
		Color:    p.Color,
		X:        p.X,
		Y:        p.Y,
	})

	if s.state.PlayerCount() == 2 {
		s.state.Start()
		s.log.Info("match started")
		s.broadcast(now, protocol.KindMatchStart, protocol.MatchStart{ServerTime: now.UnixMilli()})
	} else {
		s.sendTo(slot, now, protocol.KindWaiting, protocol.Waiting{Message: "waiting for a second player"})
	}

	cmd.reply <- joinReply{player: slot}
}

func (s *Session) handleLeave(player model.PlayerID, now time.Time) {
	p, ok := s.peers[player]
	if !ok {
		return
	}
	delete(s.peers, player)
	_ = p.conn.Close()
	s.log.Info("player left", "player", int(player))

	switch s.state.Phase() {
	case model.MatchPhaseWaiting:
		s.state.RemovePlayer(player)
	case model.MatchPhasePlaying:
		s.state.EndByDisconnect(player)
		s.broadcast(now, protocol.KindPeerLeft, protocol.PeerLeft{PlayerID: player})
		s.finishMatch(now)
	}
}

// step runs one simulation tick. It returns true once the match is over
// and every delayed outbound message has drained, meaning the session
// should tear down.
func (s *Session) step(now time.Time, dt float64) bool {
	for _, ti := range s.inbound.PopReady(now) {
		if err := s.state.SetInput(ti.player, ti.input.DX, ti.input.DY); err != nil {
			s.log.Debug("input rejected", "player", int(ti.player), "error", err)
		}
	}

	if s.state.Phase() == model.MatchPhasePlaying {
		events := s.state.Advance(dt)
		for _, ev := range events {
			s.broadcast(now, protocol.KindCoinCollected, protocol.CoinCollected{
				PlayerID: ev.Player,
				CoinID:   ev.Coin,
				NewScore: ev.NewScore,
			})
		}

		if s.state.Phase() == model.MatchPhaseEnded {
			s.finishMatch(now)
		} else if s.state.Tick()%s.broadcastEvery == 0 {
			s.broadcastSnapshot(now)
		}
	}

	s.flush(now)

	return s.state.Phase() == model.MatchPhaseEnded && s.pending() == 0
}

// finishMatch announces the result and records the summary. It runs at
// most once per session.
func (s *Session) finishMatch(now time.Time) {
	res := s.state.Result()
	if res == nil || s.saved {
		return
	}
	s.saved = true

	s.broadcast(now, protocol.KindMatchEnd, protocol.MatchEnd{
		Winner: res.Winner,
		Draw:   res.Draw,
		Scores: res.Scores,
		Reason: res.Reason,
	})

	duration := time.Duration(s.state.Elapsed() * float64(time.Second))
	summary := &model.MatchSummary{
		ID:       s.id,
		Result:   *res,
		Duration: duration,
		EndedAt:  now,
	}
	if err := s.store.SaveMatch(context.Background(), summary); err != nil {
		s.log.Error("failed to save match summary", "error", err)
	}
	s.log.Info("match ended",
		"reason", string(res.Reason),
		"winner", int(res.Winner),
		"draw", res.Draw,
		"duration", duration.String(),
	)
}

func (s *Session) broadcastSnapshot(now time.Time) {
	players := s.state.Players()
	coins := s.state.Coins()
	snap := protocol.Snapshot{
		Tick:       s.state.Tick(),
		ServerTime: now.UnixMilli(),
		Phase:      s.state.Phase(),
		Players:    make([]protocol.PlayerSnapshot, 0, len(players)),
		Coins:      make([]protocol.CoinSnapshot, 0, len(coins)),
		GameTime:   s.state.Elapsed(),
	}
	for _, p := range players {
		snap.Players = append(snap.Players, protocol.PlayerSnapshot{
			ID:    p.ID,
			X:     p.X,
			Y:     p.Y,
			Score: p.Score,
			Color: p.Color,
		})
	}
	for _, c := range coins {
		snap.Coins = append(snap.Coins, protocol.CoinSnapshot{ID: c.ID, X: c.X, Y: c.Y})
	}
	s.broadcast(now, protocol.KindSnapshot, snap)
}

// broadcast enqueues a message for every peer; delivery happens after
// the simulated downlink delay
func (s *Session) broadcast(now time.Time, kind protocol.Kind, payload any) {
	data, err := protocol.Encode(kind, payload)
	if err != nil {
		s.log.Error("failed to encode message", "kind", string(kind), "error", err)
		return
	}
	for _, p := range s.peers {
		p.conn.Enqueue(now, data)
	}
}

func (s *Session) sendTo(player model.PlayerID, now time.Time, kind protocol.Kind, payload any) {
	p, ok := s.peers[player]
	if !ok {
		return
	}
	data, err := protocol.Encode(kind, payload)
	if err != nil {
		s.log.Error("failed to encode message", "kind", string(kind), "error", err)
		return
	}
	p.conn.Enqueue(now, data)
}

func (s *Session) flush(now time.Time) {
	var failed []model.PlayerID
	for id, p := range s.peers {
		if err := p.conn.Flush(now); err != nil {
			s.log.Warn("send failed, dropping peer", "player", int(id), "error", err)
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		s.handleLeave(id, now)
	}
}

func (s *Session) pending() int {
	n := 0
	for _, p := range s.peers {
		n += p.conn.Pending()
	}
	return n
}

func (s *Session) freeSlot() model.PlayerID {
	for _, id := range []model.PlayerID{model.PlayerOne, model.PlayerTwo} {
		if _, taken := s.peers[id]; !taken {
			return id
		}
	}
	return 0
}

func (s *Session) teardown() {
	for id, p := range s.peers {
		_ = p.conn.Close()
		delete(s.peers, id)
	}
	s.inbound.Clear()
	close(s.done)
	s.log.Info("session closed")
}
