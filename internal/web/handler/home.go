package handler

import (
	"net/http"

	"github.com/mcoot/skyjoscore/internal/model"
	"github.com/mcoot/skyjoscore/internal/web/middleware"
	"github.com/mcoot/skyjoscore/internal/web/templates/layout"
	"github.com/mcoot/skyjoscore/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pages.HomeData{
		PageData: layout.PageData{
			Title:       "Home",
			SessionCode: string(middleware.GetSessionCode(r.Context())),
			Flash:       middleware.GetFlash(r.Context()),
		},
		DefaultRounds: model.DefaultTotalRounds,
		MinPlayers:    model.MinPlayers,
		MaxPlayers:    model.MaxPlayers,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
