package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/skyjoscore/internal/dependencies/clock"
	"github.com/mcoot/skyjoscore/internal/model"
	"github.com/mcoot/skyjoscore/internal/services/chart"
	"github.com/mcoot/skyjoscore/internal/services/export"
	"github.com/mcoot/skyjoscore/internal/services/session"
	"github.com/mcoot/skyjoscore/internal/services/share"
	"github.com/mcoot/skyjoscore/internal/web/middleware"
	"github.com/mcoot/skyjoscore/internal/web/templates/layout"
	"github.com/mcoot/skyjoscore/internal/web/templates/pages"
)

// SessionHandler handles game pages and scoring actions
type SessionHandler struct {
	sessionController *session.Controller
	chartService      *chart.Service
	exportService     *export.Service
	shareService      *share.Service
	clock             clock.Clock
	logger            *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(
	sessionController *session.Controller,
	chartService *chart.Service,
	exportService *export.Service,
	shareService *share.Service,
	clk clock.Clock,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionController: sessionController,
		chartService:      chartService,
		exportService:     exportService,
		shareService:      shareService,
		clock:             clk,
		logger:            logger,
	}
}

// Create handles starting a new game from the home page form
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	names, totalRounds, err := parseConfigForm(r)
	if err != nil {
		middleware.SetFlash(w, "error", err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sess, err := h.sessionController.CreateSession(r.Context())
	if err != nil {
		middleware.SetFlash(w, "error", "Could not create the game")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sess, err = h.sessionController.Configure(r.Context(), sess.Code, names, totalRounds)
	if err != nil {
		_ = h.sessionController.DeleteSession(r.Context(), sess.Code)
		middleware.SetFlash(w, "error", configureErrorMessage(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetSessionCookie(w, sess.Code)
	middleware.SetFlash(w, "success", "Game on! Good luck everyone.")
	http.Redirect(w, r, "/session/"+string(sess.Code), http.StatusSeeOther)
}

// JoinByForm handles resuming a game by code
func (h *SessionHandler) JoinByForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	code := model.SessionCode(strings.ToUpper(strings.TrimSpace(r.FormValue("code"))))
	if code == "" {
		middleware.SetFlash(w, "error", "Game code is required")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if _, err := h.sessionController.GetSession(r.Context(), code); err != nil {
		middleware.SetFlash(w, "error", "No game found with that code")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetSessionCookie(w, code)
	http.Redirect(w, r, "/session/"+string(code), http.StatusSeeOther)
}

// View renders the game page
func (h *SessionHandler) View(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := model.SessionCode(vars["code"])

	sess, err := h.sessionController.GetSession(r.Context(), code)
	if err != nil {
		middleware.SetFlash(w, "error", "No game found with that code")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := pages.GameData{
		PageData: layout.PageData{
			Title:       "Game " + string(sess.Code),
			SessionCode: string(middleware.GetSessionCode(r.Context())),
			Flash:       middleware.GetFlash(r.Context()),
		},
		Session:   sess,
		Standings: sess.Standings(),
		Series:    h.chartService.CumulativeSeries(sess),
	}

	if winner, ok := sess.Winner(); ok {
		data.Winner = &winner
	}

	if sess.Phase != model.PhaseSetup {
		snapshot, err := h.shareService.Encode(sess)
		if err != nil {
			h.logger.Error("failed to encode share snapshot", "code", sess.Code, "error", err)
		} else {
			data.Snapshot = snapshot
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Game(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Configure handles the setup form on the game page
func (h *SessionHandler) Configure(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := model.SessionCode(vars["code"])

	names, totalRounds, err := parseConfigForm(r)
	if err != nil {
		middleware.SetFlash(w, "error", err.Error())
		http.Redirect(w, r, "/session/"+string(code), http.StatusSeeOther)
		return
	}

	if _, err := h.sessionController.Configure(r.Context(), code, names, totalRounds); err != nil {
		middleware.SetFlash(w, "error", configureErrorMessage(err))
		http.Redirect(w, r, redirectTarget(err, code), http.StatusSeeOther)
		return
	}

	middleware.SetSessionCookie(w, code)
	middleware.SetFlash(w, "success", "Game on! Good luck everyone.")
	http.Redirect(w, r, "/session/"+string(code), http.StatusSeeOther)
}

// SubmitScores handles the round score entry form
func (h *SessionHandler) SubmitScores(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := model.SessionCode(vars["code"])

	sess, err := h.sessionController.GetSession(r.Context(), code)
	if err != nil {
		middleware.SetFlash(w, "error", "No game found with that code")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/session/"+string(code), http.StatusSeeOther)
		return
	}

	scores := make(map[string]int, len(sess.Players))
	for _, player := range sess.Players {
		raw := strings.TrimSpace(r.FormValue("score_" + player.Name))
		if raw == "" {
			middleware.SetFlash(w, "error", "Enter a score for "+player.Name)
			http.Redirect(w, r, "/session/"+string(code), http.StatusSeeOther)
			return
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			middleware.SetFlash(w, "error", "Score for "+player.Name+" must be a whole number")
			http.Redirect(w, r, "/session/"+string(code), http.StatusSeeOther)
			return
		}
		scores[player.Name] = value
	}

	roundNumber := sess.CurrentRound()
	sess, err = h.sessionController.SubmitRound(r.Context(), code, scores)
	if err != nil {
		middleware.SetFlash(w, "error", submitErrorMessage(err))
		http.Redirect(w, r, "/session/"+string(code), http.StatusSeeOther)
		return
	}

	if sess.IsComplete() {
		middleware.SetFlash(w, "success", "That's the last round, final standings are in!")
	} else {
		middleware.SetFlash(w, "success", fmt.Sprintf("Round %d recorded", roundNumber))
	}
	http.Redirect(w, r, "/session/"+string(code), http.StatusSeeOther)
}

// Reset handles starting over with the same game code
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := model.SessionCode(vars["code"])

	if _, err := h.sessionController.Reset(r.Context(), code); err != nil {
		middleware.SetFlash(w, "error", "No game found with that code")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "info", "Scores cleared, set up the next game")
	http.Redirect(w, r, "/session/"+string(code), http.StatusSeeOther)
}

// Export handles the CSV download
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := model.SessionCode(vars["code"])

	sess, err := h.sessionController.GetSession(r.Context(), code)
	if err != nil {
		middleware.SetFlash(w, "error", "No game found with that code")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data, err := h.exportService.CSV(sess)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	filename := h.exportService.Filename(h.clock.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
}

// Import handles loading a shared game snapshot from the home page form
func (h *SessionHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	snapshot, err := h.shareService.Decode(strings.TrimSpace(r.FormValue("snapshot")))
	if err != nil {
		middleware.SetFlash(w, "error", "That share code could not be read")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sess, err := h.sessionController.ImportSession(r.Context(), snapshot)
	if err != nil {
		middleware.SetFlash(w, "error", "Could not import the game")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetSessionCookie(w, sess.Code)
	middleware.SetFlash(w, "success", "Game imported")
	http.Redirect(w, r, "/session/"+string(sess.Code), http.StatusSeeOther)
}

// Leave forgets the remembered game and returns to the home page
func (h *SessionHandler) Leave(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// parseConfigForm reads player names and round count from the setup form
func parseConfigForm(r *http.Request) (names []string, totalRounds int, err error) {
	if err := r.ParseForm(); err != nil {
		return nil, 0, errors.New("Invalid form data")
	}

	for _, line := range strings.Split(r.FormValue("players"), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}

	totalRounds = model.DefaultTotalRounds
	if raw := strings.TrimSpace(r.FormValue("total_rounds")); raw != "" {
		totalRounds, err = strconv.Atoi(raw)
		if err != nil {
			return nil, 0, errors.New("Rounds must be a whole number")
		}
	}

	return names, totalRounds, nil
}

func configureErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrPlayerCountOutOfRange):
		return fmt.Sprintf("A game needs between %d and %d players", model.MinPlayers, model.MaxPlayers)
	case errors.Is(err, model.ErrDuplicatePlayerName):
		return "Player names must be unique"
	case errors.Is(err, model.ErrEmptyPlayerName):
		return "Player names must not be empty"
	case errors.Is(err, model.ErrInvalidRoundCount):
		return "A game needs at least 1 round"
	case errors.Is(err, model.ErrSessionNotFound):
		return "No game found with that code"
	default:
		return "Could not set up the game"
	}
}

func submitErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrSessionCompleted):
		return "All rounds have already been recorded"
	case errors.Is(err, model.ErrSessionNotConfigured):
		return "Set up the game before recording scores"
	case errors.Is(err, model.ErrSessionNotFound):
		return "No game found with that code"
	default:
		return "Could not record the round"
	}
}

// redirectTarget sends not-found errors home, everything else back to the game
func redirectTarget(err error, code model.SessionCode) string {
	if errors.Is(err, model.ErrSessionNotFound) {
		return "/"
	}
	return "/session/" + string(code)
}
