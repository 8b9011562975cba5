package model

import (
	"sort"
	"time"
)

// SessionCode is a short human-shareable identifier for a scoring session
type SessionCode string

// Phase represents the lifecycle stage of a session
type Phase string

const (
	PhaseSetup      Phase = "setup"       // Waiting for players/rounds to be configured
	PhaseInProgress Phase = "in_progress" // Accepting round scores
	PhaseCompleted  Phase = "completed"   // All rounds recorded
)

// Player limits for a Skyjo game
const (
	MinPlayers = 2
	MaxPlayers = 8
)

// DefaultTotalRounds is the round count used when none is configured
const DefaultTotalRounds = 10

// Player is a participant being scored. Name is unique within a session
// (case-sensitive); Order is the setup position, used for display and
// tie-breaking and stable for the life of the game.
type Player struct {
	Name  string
	Order int
}

// Round holds one committed round of scores, keyed by player name.
// A round is only ever stored with exactly one entry per player.
type Round map[string]int

// Session is the aggregate root for one scored game
type Session struct {
	Code        SessionCode
	Players     []Player
	TotalRounds int
	Rounds      []Round // Rounds[i] is round i+1; always a contiguous prefix
	Phase       Phase
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoundsCommitted returns the number of fully recorded rounds
func (s *Session) RoundsCommitted() int {
	return len(s.Rounds)
}

// CurrentRound returns the 1-based index of the next round to be scored.
// Once the game is complete it stays at TotalRounds.
func (s *Session) CurrentRound() int {
	if len(s.Rounds) >= s.TotalRounds {
		return s.TotalRounds
	}
	return len(s.Rounds) + 1
}

// RoundsRemaining returns how many rounds are still to be scored
func (s *Session) RoundsRemaining() int {
	remaining := s.TotalRounds - len(s.Rounds)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsComplete returns true if all rounds have been recorded
func (s *Session) IsComplete() bool {
	return s.Phase == PhaseCompleted
}

// HasPlayer returns true if a player with the given name is in the session
func (s *Session) HasPlayer(name string) bool {
	for _, p := range s.Players {
		if p.Name == name {
			return true
		}
	}
	return false
}

// PlayerNames returns player names in setup order
func (s *Session) PlayerNames() []string {
	names := make([]string, len(s.Players))
	for i, p := range s.Players {
		names[i] = p.Name
	}
	return names
}

// Total returns the cumulative score for the named player across all
// committed rounds
func (s *Session) Total(name string) int {
	total := 0
	for _, round := range s.Rounds {
		total += round[name]
	}
	return total
}

// Standing is one row of the leaderboard
type Standing struct {
	Player Player
	Total  int
	Rank   int // 1 = lowest total; ranks are positional, ties keep setup order
}

// Standings returns players ordered by cumulative total ascending (lower is
// better in Skyjo). Ties are broken by setup order and ranks are assigned
// positionally 1..N.
func (s *Session) Standings() []Standing {
	standings := make([]Standing, len(s.Players))
	for i, p := range s.Players {
		standings[i] = Standing{Player: p, Total: s.Total(p.Name)}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Total < standings[j].Total
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}

// Winner returns the leader of a completed game. The second return is false
// until the session is completed.
func (s *Session) Winner() (Standing, bool) {
	if s.Phase != PhaseCompleted || len(s.Players) == 0 {
		return Standing{}, false
	}
	return s.Standings()[0], true
}
