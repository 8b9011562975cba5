package response

import (
	"github.com/mcoot/skyjoscore/internal/model"
	"github.com/mcoot/skyjoscore/internal/services/chart"
)

// Standing is one leaderboard row in API responses
type Standing struct {
	Rank   int    `json:"rank"`
	Player string `json:"player"`
	Total  int    `json:"total"`
}

// StandingFromModel converts a model.Standing
func StandingFromModel(s model.Standing) Standing {
	return Standing{
		Rank:   s.Rank,
		Player: s.Player.Name,
		Total:  s.Total,
	}
}

// Session represents a scoring session in API responses
type Session struct {
	Code            string           `json:"code"`
	Phase           string           `json:"phase"`
	Players         []string         `json:"players"`
	TotalRounds     int              `json:"total_rounds"`
	CurrentRound    int              `json:"current_round"`
	RoundsRemaining int              `json:"rounds_remaining"`
	Rounds          []map[string]int `json:"rounds"`
	Standings       []Standing       `json:"standings,omitempty"`
	Winner          *Standing        `json:"winner,omitempty"`
}

// SessionFromModel converts a model.Session
func SessionFromModel(s *model.Session) Session {
	rounds := make([]map[string]int, len(s.Rounds))
	for i, round := range s.Rounds {
		rounds[i] = round
	}

	resp := Session{
		Code:            string(s.Code),
		Phase:           string(s.Phase),
		Players:         s.PlayerNames(),
		TotalRounds:     s.TotalRounds,
		CurrentRound:    s.CurrentRound(),
		RoundsRemaining: s.RoundsRemaining(),
		Rounds:          rounds,
	}

	if s.Phase != model.PhaseSetup && s.RoundsCommitted() > 0 {
		for _, st := range s.Standings() {
			resp.Standings = append(resp.Standings, StandingFromModel(st))
		}
	}

	if winner, ok := s.Winner(); ok {
		w := StandingFromModel(winner)
		resp.Winner = &w
	}

	return resp
}

// Chart is the cumulative chart payload
type Chart struct {
	Series []chart.Series `json:"series"`
}

// Share is the encoded snapshot payload
type Share struct {
	Snapshot string `json:"snapshot"`
}
