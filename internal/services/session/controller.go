package session

import (
	"context"
	"log/slog"

	"github.com/mcoot/skyjoscore/internal/dependencies/clock"
	"github.com/mcoot/skyjoscore/internal/dependencies/random"
	"github.com/mcoot/skyjoscore/internal/model"
	"github.com/mcoot/skyjoscore/internal/storage"
)

const (
	// SessionCodeLength is the length of generated session codes
	SessionCodeLength = 6
	// SessionCodeAlphabet is the characters used in session codes (avoid confusing chars)
	SessionCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Controller owns the session state machine: configuration, round
// submission, standings and reset. Every state-changing operation validates
// fully before mutating, so a rejected call leaves the session unchanged.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new session Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// CreateSession creates an empty session in the setup phase
func (c *Controller) CreateSession(ctx context.Context) (*model.Session, error) {
	now := c.clock.Now()

	// Generate unique session code
	var code model.SessionCode
	for {
		code = model.SessionCode(c.random.String(SessionCodeLength, SessionCodeAlphabet))
		exists, err := c.storage.SessionExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	session := &model.Session{
		Code:        code,
		Players:     []model.Player{},
		TotalRounds: model.DefaultTotalRounds,
		Rounds:      []model.Round{},
		Phase:       model.PhaseSetup,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session created", slog.String("session_code", string(code)))

	return session, nil
}

// GetSession retrieves a session by code
func (c *Controller) GetSession(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	return c.storage.GetSession(ctx, code)
}

// Configure starts a new game in the session: it sets the roster and round
// count, clears any recorded scores, and moves the session to in_progress.
// A session that already holds a game is replaced wholesale, which is how
// "New Game" works after a completed game.
func (c *Controller) Configure(ctx context.Context, code model.SessionCode, names []string, totalRounds int) (*model.Session, error) {
	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := validateConfiguration(names, totalRounds); err != nil {
		return nil, err
	}

	players := make([]model.Player, len(names))
	for i, name := range names {
		players[i] = model.Player{Name: name, Order: i}
	}

	session.Players = players
	session.TotalRounds = totalRounds
	session.Rounds = []model.Round{}
	session.Phase = model.PhaseInProgress
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_code", string(code)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game configured",
		slog.String("session_code", string(code)),
		slog.Int("player_count", len(players)),
		slog.Int("total_rounds", totalRounds),
	)

	return session, nil
}

// validateConfiguration checks the configure preconditions without touching
// any state (all-or-nothing)
func validateConfiguration(names []string, totalRounds int) error {
	if len(names) < model.MinPlayers || len(names) > model.MaxPlayers {
		return model.ErrPlayerCountOutOfRange
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			return model.ErrEmptyPlayerName
		}
		if seen[name] {
			return model.ErrDuplicatePlayerName
		}
		seen[name] = true
	}
	if totalRounds < 1 {
		return model.ErrInvalidRoundCount
	}
	return nil
}

// SubmitRound commits the next round of scores. The map must contain exactly
// one entry per player; values are not range-checked (Skyjo penalties can
// push a round score negative or well past the usual bounds).
func (c *Controller) SubmitRound(ctx context.Context, code model.SessionCode, scores map[string]int) (*model.Session, error) {
	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return nil, err
	}

	switch session.Phase {
	case model.PhaseSetup:
		return nil, model.ErrSessionNotConfigured
	case model.PhaseCompleted:
		return nil, model.ErrSessionCompleted
	}

	for _, p := range session.Players {
		if _, ok := scores[p.Name]; !ok {
			return nil, model.ErrMissingPlayerScore
		}
	}
	for name := range scores {
		if !session.HasPlayer(name) {
			return nil, model.ErrUnknownPlayerScore
		}
	}

	round := make(model.Round, len(scores))
	for name, score := range scores {
		round[name] = score
	}

	session.Rounds = append(session.Rounds, round)
	if len(session.Rounds) == session.TotalRounds {
		session.Phase = model.PhaseCompleted
	}
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("round recorded",
		slog.String("session_code", string(code)),
		slog.Int("round", len(session.Rounds)),
		slog.Bool("completed", session.Phase == model.PhaseCompleted),
	)

	return session, nil
}

// Standings returns the current leaderboard for the session
func (c *Controller) Standings(ctx context.Context, code model.SessionCode) ([]model.Standing, error) {
	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return nil, err
	}
	return session.Standings(), nil
}

// IsComplete reports whether every round of the session has been recorded
func (c *Controller) IsComplete(ctx context.Context, code model.SessionCode) (bool, error) {
	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return false, err
	}
	return session.IsComplete(), nil
}

// Reset unconditionally returns the session to the setup phase with an
// empty roster and no scores
func (c *Controller) Reset(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return nil, err
	}

	session.Players = []model.Player{}
	session.TotalRounds = model.DefaultTotalRounds
	session.Rounds = []model.Round{}
	session.Phase = model.PhaseSetup
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session reset", slog.String("session_code", string(code)))

	return session, nil
}

// DeleteSession removes a session entirely
func (c *Controller) DeleteSession(ctx context.Context, code model.SessionCode) error {
	if err := c.storage.DeleteSession(ctx, code); err != nil {
		return err
	}
	c.logger.Info("session deleted", slog.String("session_code", string(code)))
	return nil
}

// ImportSession stores a decoded snapshot under a fresh code, so scoring
// can continue on this instance from a shared link
func (c *Controller) ImportSession(ctx context.Context, snapshot *model.Session) (*model.Session, error) {
	created, err := c.CreateSession(ctx)
	if err != nil {
		return nil, err
	}

	created.Players = snapshot.Players
	created.TotalRounds = snapshot.TotalRounds
	created.Rounds = snapshot.Rounds
	created.Phase = snapshot.Phase
	created.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, created); err != nil {
		return nil, err
	}

	c.logger.Info("session imported",
		slog.String("session_code", string(created.Code)),
		slog.Int("rounds", len(created.Rounds)),
	)

	return created, nil
}
