package pages

import (
	"github.com/mcoot/skyjoscore/internal/model"
	"github.com/mcoot/skyjoscore/internal/services/chart"
	"github.com/mcoot/skyjoscore/internal/web/templates/layout"
)

// HomeData holds data for the home page
type HomeData struct {
	layout.PageData
	DefaultRounds int
	MinPlayers    int
	MaxPlayers    int
}

// GameData holds data for the game page
type GameData struct {
	layout.PageData
	Session   *model.Session
	Standings []model.Standing
	Winner    *model.Standing
	Series    []chart.Series
	// Snapshot is the encoded share state, empty while in setup
	Snapshot string
}
