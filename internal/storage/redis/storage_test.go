package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/skyjoscore/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) testSession(code model.SessionCode) *model.Session {
	return &model.Session{
		Code: code,
		Players: []model.Player{
			{Name: "Alice", Order: 0},
			{Name: "Bob", Order: 1},
			{Name: "Carol", Order: 2},
		},
		TotalRounds: 10,
		Rounds: []model.Round{
			{"Alice": 5, "Bob": -2, "Carol": 12},
			{"Alice": -1, "Bob": 30, "Carol": 0},
		},
		Phase:     model.PhaseInProgress,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := s.testSession("GAME01")

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "GAME01")
	s.Require().NoError(err)
	s.Equal(session.Code, retrieved.Code)
	s.Equal(session.Players, retrieved.Players)
	s.Equal(session.TotalRounds, retrieved.TotalRounds)
	s.Equal(session.Phase, retrieved.Phase)
}

func (s *StorageSuite) TestRoundTripPreservesScoresAndOrder() {
	session := s.testSession("GAME01")
	_ = s.storage.SaveSession(s.ctx, session)

	retrieved, err := s.storage.GetSession(s.ctx, "GAME01")
	s.Require().NoError(err)

	// Negative values survive and rounds stay in order
	s.Equal(session.Rounds, retrieved.Rounds)
	s.Equal(-2, retrieved.Rounds[0]["Bob"])
	s.Equal([]string{"Alice", "Bob", "Carol"}, retrieved.PlayerNames())
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "NOPE")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	_ = s.storage.SaveSession(s.ctx, s.testSession("GAME01"))

	err := s.storage.DeleteSession(s.ctx, "GAME01")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "GAME01")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionExists() {
	exists, err := s.storage.SessionExists(s.ctx, "GAME01")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveSession(s.ctx, s.testSession("GAME01"))

	exists, err = s.storage.SessionExists(s.ctx, "GAME01")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestSessionTTLExpires() {
	_ = s.storage.SaveSession(s.ctx, s.testSession("GAME01"))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetSession(s.ctx, "GAME01")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSaveRefreshesTTL() {
	_ = s.storage.SaveSession(s.ctx, s.testSession("GAME01"))

	s.mini.FastForward(30 * time.Minute)
	_ = s.storage.SaveSession(s.ctx, s.testSession("GAME01"))
	s.mini.FastForward(45 * time.Minute)

	_, err := s.storage.GetSession(s.ctx, "GAME01")
	s.NoError(err)
}
