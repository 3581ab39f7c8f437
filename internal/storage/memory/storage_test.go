package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/coincollector-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) summary(id model.MatchID, winner model.PlayerID) *model.MatchSummary {
	return &model.MatchSummary{
		ID: id,
		Result: model.MatchResult{
			Winner: winner,
			Scores: map[model.PlayerID]int{model.PlayerOne: 10, model.PlayerTwo: 4},
			Reason: model.EndReasonScore,
		},
		Duration: 42 * time.Second,
		EndedAt:  time.Now(),
	}
}

func (s *StorageSuite) TestSaveAndGetMatch() {
	sum := s.summary("match-1", model.PlayerOne)

	err := s.storage.SaveMatch(s.ctx, sum)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(sum.ID, retrieved.ID)
	s.Equal(model.PlayerOne, retrieved.Result.Winner)
	s.Equal(model.EndReasonScore, retrieved.Result.Reason)
}

func (s *StorageSuite) TestGetMatchNotFound() {
	_, err := s.storage.GetMatch(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestListMatchesOldestFirst() {
	_ = s.storage.SaveMatch(s.ctx, s.summary("match-1", model.PlayerOne))
	_ = s.storage.SaveMatch(s.ctx, s.summary("match-2", model.PlayerTwo))
	_ = s.storage.SaveMatch(s.ctx, s.summary("match-3", 0))

	matches, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(matches, 3)
	s.Equal(model.MatchID("match-1"), matches[0].ID)
	s.Equal(model.MatchID("match-2"), matches[1].ID)
	s.Equal(model.MatchID("match-3"), matches[2].ID)
}

func (s *StorageSuite) TestSaveMatchOverwritesWithoutDuplicating() {
	_ = s.storage.SaveMatch(s.ctx, s.summary("match-1", model.PlayerOne))
	_ = s.storage.SaveMatch(s.ctx, s.summary("match-1", model.PlayerTwo))

	matches, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal(model.PlayerTwo, matches[0].Result.Winner)
}
