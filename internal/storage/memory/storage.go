package memory

import (
	"context"
	"sync"

	"github.com/mcoot/coincollector-go/internal/model"
	"github.com/mcoot/coincollector-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	matches map[model.MatchID]*model.MatchSummary
	order   []model.MatchID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		matches: make(map[model.MatchID]*model.MatchSummary),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveMatch(ctx context.Context, summary *model.MatchSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[summary.ID]; !ok {
		s.order = append(s.order, summary.ID)
	}
	s.matches[summary.ID] = summary
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.MatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return summary, nil
}

// ListMatches returns summaries oldest first
func (s *Storage) ListMatches(ctx context.Context) ([]*model.MatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.MatchSummary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.matches[id])
	}
	return out, nil
}
