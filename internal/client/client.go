// Package client implements the game client: it decodes server frames,
// predicts the local player, interpolates the remote player, and exposes
// a view model for rendering.
package client

import (
	"log/slog"
	"time"

	"github.com/mcoot/coincollector-go/internal/client/interp"
	"github.com/mcoot/coincollector-go/internal/client/prediction"
	"github.com/mcoot/coincollector-go/internal/config"
	"github.com/mcoot/coincollector-go/internal/geometry"
	"github.com/mcoot/coincollector-go/internal/model"
	"github.com/mcoot/coincollector-go/internal/protocol"
	"github.com/mcoot/coincollector-go/internal/transport"
)

const (
	frameQueueSize  = 256
	intentQueueSize = 16
)

// Phase is the client's view of where the match is
type Phase string

const (
	PhaseConnecting Phase = "connecting"
	PhaseWaiting    Phase = "waiting"
	PhasePlaying    Phase = "playing"
	PhaseEnded      Phase = "ended"
	PhaseRefused    Phase = "refused"
)

// Result is the end-of-match outcome as the client saw it
type Result struct {
	Winner   model.PlayerID
	Draw     bool
	Scores   map[model.PlayerID]int
	Reason   model.EndReason
	PeerLeft bool
}

// intent is a directional input queued for the render goroutine
type intent struct {
	dx, dy int
}

// Client owns all client-side match state. HandleFrame and SetInput may
// be called from other goroutines; everything else must run on the
// render goroutine, which drives Step every frame.
type Client struct {
	cfg  config.Config
	log  *slog.Logger
	conn transport.Conn

	frames  chan protocol.Envelope
	intents chan intent

	phase    Phase
	playerID model.PlayerID
	color    string
	result   *Result

	predictor *prediction.Predictor
	local     struct {
		score int
	}

	remoteID    model.PlayerID
	remoteBuf   *interp.Buffer
	remoteScore int
	remoteColor string
	remoteSeen  bool

	coins    []protocol.CoinSnapshot
	gameTime float64

	dx, dy        int
	lastSentDX    int
	lastSentDY    int
	lastInputSent time.Time
	inputEverSent bool
}

// New creates a client bound to conn. Frames must be fed in through
// HandleFrame, typically from the connection's read loop.
func New(cfg config.Config, logger *slog.Logger, conn transport.Conn) *Client {
	bounds := geometry.Bounds{Width: cfg.GameWidth, Height: cfg.GameHeight}
	return &Client{
		cfg:       cfg,
		log:       logger,
		conn:      conn,
		frames:    make(chan protocol.Envelope, frameQueueSize),
		intents:   make(chan intent, intentQueueSize),
		phase:     PhaseConnecting,
		predictor: prediction.New(cfg.PlayerSpeed, cfg.PlayerRadius, bounds),
		remoteBuf: interp.New(cfg.InterpRetention, 20),
	}
}

// HandleFrame decodes one wire frame and queues it for the next Step.
// Undecodable frames are dropped.
func (c *Client) HandleFrame(data []byte) {
	env, err := protocol.DecodeEnvelope(data)
	if err != nil {
		c.log.Debug("dropping undecodable frame", "error", err)
		return
	}
	select {
	case c.frames <- env:
	default:
		c.log.Warn("frame queue full, dropping message", "kind", string(env.T))
	}
}

// SetInput records the directional intent from the UI. Safe to call from
// any goroutine; the intent takes effect on the next Step. When the queue
// is full the oldest intent is evicted so the newest always lands.
func (c *Client) SetInput(dx, dy int) {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return
	}
	for {
		select {
		case c.intents <- intent{dx: dx, dy: dy}:
			return
		default:
			select {
			case <-c.intents:
			default:
			}
		}
	}
}

// Step runs one frame of client logic: drain queued intents and server
// messages, send input, and advance the local prediction by dt seconds.
func (c *Client) Step(now time.Time, dt float64) {
	for {
		select {
		case in := <-c.intents:
			c.dx, c.dy = in.dx, in.dy
		case env := <-c.frames:
			c.handleMessage(env, now)
		default:
			c.sendInput(now)
			if c.phase == PhasePlaying {
				c.predictor.SetInput(c.dx, c.dy)
				c.predictor.Update(dt)
			}
			return
		}
	}
}

// sendInput forwards the current intent, immediately when it changed and
// otherwise throttled to the configured rate
func (c *Client) sendInput(now time.Time) {
	if c.phase != PhasePlaying {
		return
	}
	changed := c.dx != c.lastSentDX || c.dy != c.lastSentDY
	if !changed && c.inputEverSent && now.Sub(c.lastInputSent) < c.cfg.InputSendInterval() {
		return
	}

	data, err := protocol.Encode(protocol.KindInput, protocol.Input{DX: c.dx, DY: c.dy})
	if err != nil {
		return
	}
	if err := c.conn.Send(data); err != nil {
		c.log.Warn("failed to send input", "error", err)
		return
	}
	c.lastSentDX, c.lastSentDY = c.dx, c.dy
	c.lastInputSent = now
	c.inputEverSent = true
}

func (c *Client) handleMessage(env protocol.Envelope, now time.Time) {
	switch env.T {
	case protocol.KindAssign:
		msg, err := protocol.DecodePayload[protocol.Assign](env)
		if err != nil {
			return
		}
		c.playerID = msg.PlayerID
		c.remoteID = msg.PlayerID.Other()
		c.color = msg.Color
		c.predictor.SetPosition(msg.X, msg.Y)

	case protocol.KindWaiting:
		c.phase = PhaseWaiting

	case protocol.KindMatchStart:
		c.phase = PhasePlaying

	case protocol.KindSnapshot:
		msg, err := protocol.DecodePayload[protocol.Snapshot](env)
		if err != nil {
			return
		}
		c.applySnapshot(msg)

	case protocol.KindCoinCollected:
		msg, err := protocol.DecodePayload[protocol.CoinCollected](env)
		if err != nil {
			return
		}
		c.applyCoinCollected(msg)

	case protocol.KindPeerLeft:
		if c.result == nil {
			c.result = &Result{PeerLeft: true}
		} else {
			c.result.PeerLeft = true
		}

	case protocol.KindMatchEnd:
		msg, err := protocol.DecodePayload[protocol.MatchEnd](env)
		if err != nil {
			return
		}
		peerLeft := c.result != nil && c.result.PeerLeft
		c.result = &Result{
			Winner:   msg.Winner,
			Draw:     msg.Draw,
			Scores:   msg.Scores,
			Reason:   msg.Reason,
			PeerLeft: peerLeft,
		}
		c.phase = PhaseEnded

	case protocol.KindFull:
		c.phase = PhaseRefused
	}
}

func (c *Client) applySnapshot(snap protocol.Snapshot) {
	if c.phase == PhaseConnecting || c.phase == PhaseWaiting {
		c.phase = PhasePlaying
	}
	stamp := time.UnixMilli(snap.ServerTime)

	for _, p := range snap.Players {
		if p.ID == c.playerID {
			c.predictor.ApplyServer(p.X, p.Y)
			c.local.score = p.Score
			continue
		}
		c.remoteID = p.ID
		c.remoteBuf.Add(stamp, p.X, p.Y)
		c.remoteScore = p.Score
		c.remoteColor = p.Color
		c.remoteSeen = true
	}

	c.coins = snap.Coins
	c.gameTime = snap.GameTime
}

// applyCoinCollected updates scores and removes the coin without waiting
// for the next snapshot
func (c *Client) applyCoinCollected(msg protocol.CoinCollected) {
	if msg.PlayerID == c.playerID {
		c.local.score = msg.NewScore
	} else {
		c.remoteScore = msg.NewScore
	}
	for i, coin := range c.coins {
		if coin.ID == msg.CoinID {
			c.coins = append(c.coins[:i], c.coins[i+1:]...)
			break
		}
	}
}

// PlayerID returns the local slot, zero until assigned
func (c *Client) PlayerID() model.PlayerID {
	return c.playerID
}

// Phase returns the client's current phase
func (c *Client) Phase() Phase {
	return c.phase
}

// Result returns the match outcome once the phase is ended
func (c *Client) Result() *Result {
	return c.result
}
