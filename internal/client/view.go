package client

import (
	"time"

	"github.com/mcoot/coincollector-go/internal/model"
	"github.com/mcoot/coincollector-go/internal/protocol"
)

// PlayerView is one player's renderable state
type PlayerView struct {
	ID    model.PlayerID
	X     float64
	Y     float64
	Score int
	Color string
}

// View is everything a renderer needs for one frame
type View struct {
	Phase    Phase
	Local    PlayerView
	Remote   *PlayerView // nil until the remote player has been seen
	Coins    []protocol.CoinSnapshot
	GameTime float64
	Result   *Result
}

// View builds the render model for the given wall-clock instant. The
// local player comes from prediction; the remote player is read from the
// interpolation buffer at now minus the render delay.
func (c *Client) View(now time.Time) View {
	x, y := c.predictor.Position()
	v := View{
		Phase: c.phase,
		Local: PlayerView{
			ID:    c.playerID,
			X:     x,
			Y:     y,
			Score: c.local.score,
			Color: c.color,
		},
		Coins:    c.coins,
		GameTime: c.gameTime,
		Result:   c.result,
	}

	if c.remoteSeen {
		renderTime := now.Add(-c.cfg.RenderDelay)
		if rx, ry, ok := c.remoteBuf.At(renderTime); ok {
			v.Remote = &PlayerView{
				ID:    c.remoteID,
				X:     rx,
				Y:     ry,
				Score: c.remoteScore,
				Color: c.remoteColor,
			}
		}
	}

	return v
}
