package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mcoot/coincollector-go/internal/config"
	"github.com/mcoot/coincollector-go/internal/dependencies/clock"
	"github.com/mcoot/coincollector-go/internal/dependencies/random"
	"github.com/mcoot/coincollector-go/internal/model"
	"github.com/mcoot/coincollector-go/internal/storage"
	"github.com/mcoot/coincollector-go/internal/transport"
)

// Manager seats incoming connections into matches one at a time: the
// current session takes the first two players, later connections are
// refused until that match ends, and the next pair gets a fresh session.
type Manager struct {
	cfg   config.Config
	log   *slog.Logger
	clk   clock.Clock
	rnd   random.Random
	store storage.Storage

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	current *Session
}

// NewManager creates a manager with no active session
func NewManager(cfg config.Config, logger *slog.Logger, clk clock.Clock, rnd random.Random, store storage.Storage) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		cfg:    cfg,
		log:    logger,
		clk:    clk,
		rnd:    rnd,
		store:  store,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Stop cancels every running session
func (m *Manager) Stop() {
	m.cancel()
}

// HandleConn seats conn in the current match, starting a fresh session
// if the previous match has ended. ErrMatchFull means a match is in
// progress with both slots taken.
func (m *Manager) HandleConn(ctx context.Context, conn transport.Conn) (*Session, model.PlayerID, error) {
	for attempt := 0; attempt < 2; attempt++ {
		sess := m.session()
		player, err := sess.Join(ctx, conn)
		if err == nil {
			return sess, player, nil
		}
		if errors.Is(err, model.ErrMatchEnded) {
			// The session finished between lookup and join; retry once
			// against a fresh one
			continue
		}
		return nil, 0, err
	}
	return nil, 0, model.ErrMatchFull
}

// session returns the current joinable session, creating one if none
// exists or the previous match has torn down
func (m *Manager) session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil || done(m.current) {
		m.current = New(m.cfg, m.log, m.clk, m.rnd, m.store)
		go m.current.Run(m.ctx)
		m.log.Info("created session", "match_id", string(m.current.ID()))
	}
	return m.current
}

func done(s *Session) bool {
	select {
	case <-s.Done():
		return true
	default:
		return false
	}
}
