package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mcoot/coincollector-go/internal/model"
	"github.com/mcoot/coincollector-go/internal/protocol"
	"github.com/mcoot/coincollector-go/internal/session"
	"github.com/mcoot/coincollector-go/internal/transport"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Clients connect from anywhere; there is no origin allowlist
		return true
	},
}

// WSHandler upgrades connections and hands them to the session manager
type WSHandler struct {
	manager *session.Manager
	logger  *slog.Logger
}

// NewWSHandler creates the websocket entry point
func NewWSHandler(manager *session.Manager, logger *slog.Logger) *WSHandler {
	return &WSHandler{manager: manager, logger: logger}
}

// ServeHTTP handles GET /ws. The handler goroutine becomes the
// connection's read loop for the lifetime of the match.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	conn := transport.NewWSConn(ws)
	sess, player, err := h.manager.HandleConn(r.Context(), conn)
	if err != nil {
		h.refuse(ws, conn, err)
		return
	}

	defer sess.Leave(player)
	defer func() { _ = conn.Close() }()

	readErr := conn.ReadLoop(func(data []byte) {
		env, err := protocol.DecodeEnvelope(data)
		if err != nil {
			h.logger.Debug("dropping undecodable frame", slog.Any("error", err))
			return
		}
		if env.T != protocol.KindInput {
			return
		}
		input, err := protocol.DecodePayload[protocol.Input](env)
		if err != nil {
			h.logger.Debug("dropping malformed input", slog.Any("error", err))
			return
		}
		sess.HandleInput(player, input)
	})
	h.logger.Info("connection closed",
		slog.String("match_id", string(sess.ID())),
		slog.Int("player", int(player)),
		slog.Any("error", readErr),
	)
}

// refuse tells a rejected client why before closing. Refusals bypass
// the latency simulation; they never touch a match. The write goes
// straight to the socket so it lands before the close.
func (h *WSHandler) refuse(ws *websocket.Conn, conn transport.Conn, err error) {
	defer func() { _ = conn.Close() }()

	msg := "match unavailable"
	if errors.Is(err, model.ErrMatchFull) {
		msg = "match is full"
	}
	data, encErr := protocol.Encode(protocol.KindFull, protocol.Full{Message: msg})
	if encErr != nil {
		return
	}
	_ = ws.WriteMessage(websocket.TextMessage, data)
}
