package chart

import "github.com/mcoot/skyjoscore/internal/model"

// Point is one chart sample: the player's running total after a round
type Point struct {
	Round      int `json:"round"`
	Cumulative int `json:"cumulative"`
}

// Series is the cumulative score line for one player. Series order follows
// player setup order.
type Series struct {
	Player string  `json:"player"`
	Points []Point `json:"points"`
}

// Service builds cumulative score series from a session's round history.
// Purely derived, no mutation.
type Service struct{}

// New creates a new chart Service
func New() *Service {
	return &Service{}
}

// CumulativeSeries returns one series per player. Returns an empty slice
// until the first round has been recorded.
func (s *Service) CumulativeSeries(session *model.Session) []Series {
	if session.RoundsCommitted() == 0 {
		return []Series{}
	}

	series := make([]Series, len(session.Players))
	for i, p := range session.Players {
		points := make([]Point, len(session.Rounds))
		running := 0
		for r, round := range session.Rounds {
			running += round[p.Name]
			points[r] = Point{Round: r + 1, Cumulative: running}
		}
		series[i] = Series{Player: p.Name, Points: points}
	}
	return series
}

// Bounds returns the lowest and highest cumulative values across all
// series, for scaling a rendered chart. Zero is always included so the
// axis keeps a stable origin.
func Bounds(series []Series) (min, max int) {
	for _, s := range series {
		for _, p := range s.Points {
			if p.Cumulative < min {
				min = p.Cumulative
			}
			if p.Cumulative > max {
				max = p.Cumulative
			}
		}
	}
	return min, max
}
