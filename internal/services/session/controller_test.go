package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/skyjoscore/internal/dependencies/mocks"
	"github.com/mcoot/skyjoscore/internal/model"
	"github.com/mcoot/skyjoscore/internal/storage/memory"
	"github.com/mcoot/skyjoscore/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.controller = NewController(s.storage, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

// newSession creates a session with a deterministic code
func (s *ControllerSuite) newSession(code string) *model.Session {
	s.random.QueueString(code)
	session, err := s.controller.CreateSession(s.ctx)
	s.Require().NoError(err)
	return session
}

// configured creates a session already configured with the given players
func (s *ControllerSuite) configured(names []string, rounds int) *model.Session {
	created := s.newSession("GAME01")
	session, err := s.controller.Configure(s.ctx, created.Code, names, rounds)
	s.Require().NoError(err)
	return session
}

// CreateSession tests

func (s *ControllerSuite) TestCreateSessionStartsInSetup() {
	session := s.newSession("GAME01")

	s.Equal(model.SessionCode("GAME01"), session.Code)
	s.Equal(model.PhaseSetup, session.Phase)
	s.Empty(session.Players)
	s.Empty(session.Rounds)
	s.Equal(model.DefaultTotalRounds, session.TotalRounds)
}

func (s *ControllerSuite) TestCreateSessionRetriesOnCodeCollision() {
	s.newSession("GAME01")

	s.random.QueueString("GAME01", "GAME02")
	session, err := s.controller.CreateSession(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.SessionCode("GAME02"), session.Code)
}

// Configure tests

func (s *ControllerSuite) TestConfigureSucceeds() {
	session := s.configured([]string{"Alice", "Bob", "Carol"}, 8)

	s.Equal(model.PhaseInProgress, session.Phase)
	s.Equal(8, session.TotalRounds)
	s.Empty(session.Rounds)
	s.Equal([]string{"Alice", "Bob", "Carol"}, session.PlayerNames())
	// Setup order is assigned by position
	s.Equal(0, session.Players[0].Order)
	s.Equal(2, session.Players[2].Order)
}

func (s *ControllerSuite) TestConfigureIsPersisted() {
	session := s.configured([]string{"Alice", "Bob"}, 10)

	retrieved, err := s.controller.GetSession(s.ctx, session.Code)
	s.Require().NoError(err)
	s.Equal(model.PhaseInProgress, retrieved.Phase)
	s.Equal([]string{"Alice", "Bob"}, retrieved.PlayerNames())
}

func (s *ControllerSuite) TestConfigureAcceptsBoundaryPlayerCounts() {
	created := s.newSession("GAME01")

	two := []string{"P1", "P2"}
	_, err := s.controller.Configure(s.ctx, created.Code, two, 10)
	s.NoError(err)

	eight := []string{"P1", "P2", "P3", "P4", "P5", "P6", "P7", "P8"}
	_, err = s.controller.Configure(s.ctx, created.Code, eight, 10)
	s.NoError(err)
}

func (s *ControllerSuite) TestConfigureRejectsPlayerCountOutOfRange() {
	created := s.newSession("GAME01")

	for _, names := range [][]string{
		{},
		{"Solo"},
		{"P1", "P2", "P3", "P4", "P5", "P6", "P7", "P8", "P9"},
	} {
		_, err := s.controller.Configure(s.ctx, created.Code, names, 10)
		s.ErrorIs(err, model.ErrPlayerCountOutOfRange)
	}
}

func (s *ControllerSuite) TestConfigureRejectsEmptyName() {
	created := s.newSession("GAME01")

	_, err := s.controller.Configure(s.ctx, created.Code, []string{"Alice", ""}, 10)
	s.ErrorIs(err, model.ErrEmptyPlayerName)
}

func (s *ControllerSuite) TestConfigureRejectsDuplicateNames() {
	created := s.newSession("GAME01")

	_, err := s.controller.Configure(s.ctx, created.Code, []string{"Alice", "Alice"}, 10)
	s.ErrorIs(err, model.ErrDuplicatePlayerName)
}

func (s *ControllerSuite) TestConfigureNamesAreCaseSensitive() {
	created := s.newSession("GAME01")

	_, err := s.controller.Configure(s.ctx, created.Code, []string{"alice", "Alice"}, 10)
	s.NoError(err)
}

func (s *ControllerSuite) TestConfigureRejectsInvalidRoundCount() {
	created := s.newSession("GAME01")

	for _, rounds := range []int{0, -1} {
		_, err := s.controller.Configure(s.ctx, created.Code, []string{"Alice", "Bob"}, rounds)
		s.ErrorIs(err, model.ErrInvalidRoundCount)
	}
}

func (s *ControllerSuite) TestConfigureFailureLeavesSessionUnchanged() {
	created := s.newSession("GAME01")

	_, err := s.controller.Configure(s.ctx, created.Code, []string{"Alice", "Alice"}, 10)
	s.Require().Error(err)

	retrieved, err := s.controller.GetSession(s.ctx, created.Code)
	s.Require().NoError(err)
	s.Equal(model.PhaseSetup, retrieved.Phase)
	s.Empty(retrieved.Players)
}

func (s *ControllerSuite) TestConfigureReplacesCompletedGame() {
	session := s.configured([]string{"Alice", "Bob"}, 1)
	_, err := s.controller.SubmitRound(s.ctx, session.Code, map[string]int{"Alice": 5, "Bob": 3})
	s.Require().NoError(err)

	replaced, err := s.controller.Configure(s.ctx, session.Code, []string{"Carol", "Dave"}, 10)
	s.Require().NoError(err)
	s.Equal(model.PhaseInProgress, replaced.Phase)
	s.Empty(replaced.Rounds)
	s.Equal([]string{"Carol", "Dave"}, replaced.PlayerNames())
}

func (s *ControllerSuite) TestConfigureSessionNotFound() {
	_, err := s.controller.Configure(s.ctx, "NOPE", []string{"Alice", "Bob"}, 10)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// SubmitRound tests

func (s *ControllerSuite) TestSubmitRoundRecordsScores() {
	session := s.configured([]string{"Alice", "Bob"}, 10)

	updated, err := s.controller.SubmitRound(s.ctx, session.Code, map[string]int{"Alice": 5, "Bob": -2})
	s.Require().NoError(err)

	s.Equal(1, updated.RoundsCommitted())
	s.Equal(model.PhaseInProgress, updated.Phase)
	s.Equal(5, updated.Rounds[0]["Alice"])
	s.Equal(-2, updated.Rounds[0]["Bob"])
}

func (s *ControllerSuite) TestSubmitRoundCompletesOnFinalRound() {
	session := s.configured([]string{"Alice", "Bob"}, 2)

	updated, err := s.controller.SubmitRound(s.ctx, session.Code, map[string]int{"Alice": 5, "Bob": 3})
	s.Require().NoError(err)
	s.Equal(model.PhaseInProgress, updated.Phase)
	s.False(updated.IsComplete())

	updated, err = s.controller.SubmitRound(s.ctx, session.Code, map[string]int{"Alice": 1, "Bob": 10})
	s.Require().NoError(err)
	s.Equal(model.PhaseCompleted, updated.Phase)
	s.True(updated.IsComplete())
}

func (s *ControllerSuite) TestSubmitRoundRejectedAfterCompletion() {
	session := s.configured([]string{"Alice", "Bob"}, 1)
	_, err := s.controller.SubmitRound(s.ctx, session.Code, map[string]int{"Alice": 5, "Bob": 3})
	s.Require().NoError(err)

	_, err = s.controller.SubmitRound(s.ctx, session.Code, map[string]int{"Alice": 1, "Bob": 2})
	s.ErrorIs(err, model.ErrSessionCompleted)

	retrieved, _ := s.controller.GetSession(s.ctx, session.Code)
	s.Equal(1, retrieved.RoundsCommitted())
}

func (s *ControllerSuite) TestSubmitRoundRejectedBeforeConfiguration() {
	created := s.newSession("GAME01")

	_, err := s.controller.SubmitRound(s.ctx, created.Code, map[string]int{"Alice": 5})
	s.ErrorIs(err, model.ErrSessionNotConfigured)
}

func (s *ControllerSuite) TestSubmitRoundRejectsMissingPlayer() {
	session := s.configured([]string{"Alice", "Bob"}, 10)

	_, err := s.controller.SubmitRound(s.ctx, session.Code, map[string]int{"Alice": 5})
	s.ErrorIs(err, model.ErrMissingPlayerScore)

	retrieved, _ := s.controller.GetSession(s.ctx, session.Code)
	s.Equal(0, retrieved.RoundsCommitted())
}

func (s *ControllerSuite) TestSubmitRoundRejectsUnknownPlayer() {
	session := s.configured([]string{"Alice", "Bob"}, 10)

	_, err := s.controller.SubmitRound(s.ctx, session.Code, map[string]int{"Alice": 5, "Bob": 3, "Mallory": 1})
	s.ErrorIs(err, model.ErrUnknownPlayerScore)
}

func (s *ControllerSuite) TestSubmitRoundCopiesCallerMap() {
	session := s.configured([]string{"Alice", "Bob"}, 10)

	scores := map[string]int{"Alice": 5, "Bob": 3}
	_, err := s.controller.SubmitRound(s.ctx, session.Code, scores)
	s.Require().NoError(err)

	scores["Alice"] = 999

	retrieved, _ := s.controller.GetSession(s.ctx, session.Code)
	s.Equal(5, retrieved.Rounds[0]["Alice"])
}

// Standings tests

func (s *ControllerSuite) TestStandingsOrdersByTotalAscending() {
	session := s.configured([]string{"Alice", "Bob"}, 10)
	_, err := s.controller.SubmitRound(s.ctx, session.Code, map[string]int{"Alice": 5, "Bob": 3})
	s.Require().NoError(err)

	standings, err := s.controller.Standings(s.ctx, session.Code)
	s.Require().NoError(err)

	s.Require().Len(standings, 2)
	s.Equal("Bob", standings[0].Player.Name)
	s.Equal(3, standings[0].Total)
	s.Equal(1, standings[0].Rank)
	s.Equal("Alice", standings[1].Player.Name)
	s.Equal(5, standings[1].Total)
	s.Equal(2, standings[1].Rank)
}

func (s *ControllerSuite) TestStandingsTieBreaksBySetupOrder() {
	session := s.configured([]string{"Alice", "Bob", "Carol"}, 10)
	_, err := s.controller.SubmitRound(s.ctx, session.Code, map[string]int{"Alice": 7, "Bob": 7, "Carol": 2})
	s.Require().NoError(err)

	standings, err := s.controller.Standings(s.ctx, session.Code)
	s.Require().NoError(err)

	s.Equal("Carol", standings[0].Player.Name)
	// Tied players keep setup order and get distinct positional ranks
	s.Equal("Alice", standings[1].Player.Name)
	s.Equal(2, standings[1].Rank)
	s.Equal("Bob", standings[2].Player.Name)
	s.Equal(3, standings[2].Rank)
}

func (s *ControllerSuite) TestStandingsSumsNegativeScores() {
	session := s.configured([]string{"Alice", "Bob"}, 10)
	rounds := []map[string]int{
		{"Alice": 5, "Bob": 0},
		{"Alice": -2, "Bob": 0},
		{"Alice": 10, "Bob": 0},
	}
	for _, r := range rounds {
		_, err := s.controller.SubmitRound(s.ctx, session.Code, r)
		s.Require().NoError(err)
	}

	standings, err := s.controller.Standings(s.ctx, session.Code)
	s.Require().NoError(err)
	s.Equal("Bob", standings[0].Player.Name)
	s.Equal("Alice", standings[1].Player.Name)
	s.Equal(13, standings[1].Total)
}

func (s *ControllerSuite) TestStandingsIsIdempotent() {
	session := s.configured([]string{"Alice", "Bob"}, 10)
	_, err := s.controller.SubmitRound(s.ctx, session.Code, map[string]int{"Alice": 5, "Bob": 3})
	s.Require().NoError(err)

	first, err := s.controller.Standings(s.ctx, session.Code)
	s.Require().NoError(err)
	second, err := s.controller.Standings(s.ctx, session.Code)
	s.Require().NoError(err)

	s.Equal(first, second)
}

// Reset tests

func (s *ControllerSuite) TestResetFromInProgress() {
	session := s.configured([]string{"Alice", "Bob"}, 10)
	_, err := s.controller.SubmitRound(s.ctx, session.Code, map[string]int{"Alice": 5, "Bob": 3})
	s.Require().NoError(err)

	reset, err := s.controller.Reset(s.ctx, session.Code)
	s.Require().NoError(err)

	s.Equal(model.PhaseSetup, reset.Phase)
	s.Empty(reset.Players)
	s.Empty(reset.Rounds)
	s.Equal(model.DefaultTotalRounds, reset.TotalRounds)
}

func (s *ControllerSuite) TestResetFromCompleted() {
	session := s.configured([]string{"Alice", "Bob"}, 1)
	_, err := s.controller.SubmitRound(s.ctx, session.Code, map[string]int{"Alice": 5, "Bob": 3})
	s.Require().NoError(err)

	reset, err := s.controller.Reset(s.ctx, session.Code)
	s.Require().NoError(err)
	s.Equal(model.PhaseSetup, reset.Phase)
}

func (s *ControllerSuite) TestResetFromSetupIsHarmless() {
	created := s.newSession("GAME01")

	reset, err := s.controller.Reset(s.ctx, created.Code)
	s.Require().NoError(err)
	s.Equal(model.PhaseSetup, reset.Phase)
}

// IsComplete tests

func (s *ControllerSuite) TestIsComplete() {
	session := s.configured([]string{"Alice", "Bob"}, 1)

	complete, err := s.controller.IsComplete(s.ctx, session.Code)
	s.Require().NoError(err)
	s.False(complete)

	_, err = s.controller.SubmitRound(s.ctx, session.Code, map[string]int{"Alice": 5, "Bob": 3})
	s.Require().NoError(err)

	complete, err = s.controller.IsComplete(s.ctx, session.Code)
	s.Require().NoError(err)
	s.True(complete)
}

// Delete / import tests

func (s *ControllerSuite) TestDeleteSession() {
	session := s.configured([]string{"Alice", "Bob"}, 10)

	err := s.controller.DeleteSession(s.ctx, session.Code)
	s.Require().NoError(err)

	_, err = s.controller.GetSession(s.ctx, session.Code)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ControllerSuite) TestImportSessionAssignsFreshCode() {
	snapshot := &model.Session{
		Players: []model.Player{
			{Name: "Alice", Order: 0},
			{Name: "Bob", Order: 1},
		},
		TotalRounds: 10,
		Rounds: []model.Round{
			{"Alice": 5, "Bob": 3},
		},
		Phase: model.PhaseInProgress,
	}

	s.random.QueueString("GAME09")
	imported, err := s.controller.ImportSession(s.ctx, snapshot)
	s.Require().NoError(err)

	s.Equal(model.SessionCode("GAME09"), imported.Code)
	s.Equal(snapshot.Rounds, imported.Rounds)
	s.Equal(model.PhaseInProgress, imported.Phase)

	retrieved, err := s.controller.GetSession(s.ctx, "GAME09")
	s.Require().NoError(err)
	s.Equal(1, retrieved.RoundsCommitted())
}

// End-to-end scenario

func (s *ControllerSuite) TestFullGameScenario() {
	session := s.configured([]string{"A", "B"}, 2)

	updated, err := s.controller.SubmitRound(s.ctx, session.Code, map[string]int{"A": 5, "B": 3})
	s.Require().NoError(err)
	s.Equal(model.PhaseInProgress, updated.Phase)

	standings, _ := s.controller.Standings(s.ctx, session.Code)
	s.Equal("B", standings[0].Player.Name)
	s.Equal(3, standings[0].Total)
	s.Equal(1, standings[0].Rank)
	s.Equal("A", standings[1].Player.Name)
	s.Equal(5, standings[1].Total)
	s.Equal(2, standings[1].Rank)

	updated, err = s.controller.SubmitRound(s.ctx, session.Code, map[string]int{"A": 1, "B": 10})
	s.Require().NoError(err)
	s.Equal(model.PhaseCompleted, updated.Phase)

	standings, _ = s.controller.Standings(s.ctx, session.Code)
	s.Equal("A", standings[0].Player.Name)
	s.Equal(6, standings[0].Total)
	s.Equal(1, standings[0].Rank)
	s.Equal("B", standings[1].Player.Name)
	s.Equal(13, standings[1].Total)
	s.Equal(2, standings[1].Rank)

	winner, ok := updated.Winner()
	s.True(ok)
	s.Equal("A", winner.Player.Name)
	s.Equal(6, winner.Total)
}
