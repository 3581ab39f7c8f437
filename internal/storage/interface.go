package storage

import (
	"context"

	"github.com/mcoot/coincollector-go/internal/model"
)

// Storage defines the interface for match history persistence
type Storage interface {
	SaveMatch(ctx context.Context, summary *model.MatchSummary) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.MatchSummary, error)
	ListMatches(ctx context.Context) ([]*model.MatchSummary, error)
}
