package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/skyjoscore/internal/api/request"
	"github.com/mcoot/skyjoscore/internal/api/response"
	"github.com/mcoot/skyjoscore/internal/dependencies/clock"
	"github.com/mcoot/skyjoscore/internal/model"
	"github.com/mcoot/skyjoscore/internal/services/chart"
	"github.com/mcoot/skyjoscore/internal/services/export"
	"github.com/mcoot/skyjoscore/internal/services/session"
	"github.com/mcoot/skyjoscore/internal/services/share"
)

// SessionHandler handles session-related endpoints
type SessionHandler struct {
	sessionController *session.Controller
	chartService      *chart.Service
	exportService     *export.Service
	shareService      *share.Service
	clock             clock.Clock
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(
	sessionController *session.Controller,
	chartService *chart.Service,
	exportService *export.Service,
	shareService *share.Service,
	clock clock.Clock,
) *SessionHandler {
	return &SessionHandler{
		sessionController: sessionController,
		chartService:      chartService,
		exportService:     exportService,
		shareService:      shareService,
		clock:             clock,
	}
}

// Create handles POST /api/v1/sessions
// With a body it creates and configures in one call; without one it creates
// an empty session in the setup phase.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	created, err := h.sessionController.CreateSession(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.ConfigureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && len(req.Players) > 0 {
		totalRounds := req.TotalRounds
		if totalRounds == 0 {
			totalRounds = model.DefaultTotalRounds
		}
		configured, err := h.sessionController.Configure(r.Context(), created.Code, req.Players, totalRounds)
		if err != nil {
			// Leave no half-configured session behind
			_ = h.sessionController.DeleteSession(r.Context(), created.Code)
			WriteError(w, err)
			return
		}
		created = configured
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(created))
}

// Get handles GET /api/v1/sessions/{code}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	s, err := h.sessionController.GetSession(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// Configure handles PUT /api/v1/sessions/{code}/config
func (h *SessionHandler) Configure(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	var req request.ConfigureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid JSON body"))
		return
	}

	totalRounds := req.TotalRounds
	if totalRounds == 0 {
		totalRounds = model.DefaultTotalRounds
	}

	s, err := h.sessionController.Configure(r.Context(), code, req.Players, totalRounds)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// SubmitRound handles POST /api/v1/sessions/{code}/rounds
func (h *SessionHandler) SubmitRound(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	var req request.SubmitRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid JSON body"))
		return
	}

	s, err := h.sessionController.SubmitRound(r.Context(), code, req.Scores)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// Standings handles GET /api/v1/sessions/{code}/standings
func (h *SessionHandler) Standings(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	standings, err := h.sessionController.Standings(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := make([]response.Standing, len(standings))
	for i, st := range standings {
		resp[i] = response.StandingFromModel(st)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Chart handles GET /api/v1/sessions/{code}/chart
func (h *SessionHandler) Chart(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	s, err := h.sessionController.GetSession(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Chart{
		Series: h.chartService.CumulativeSeries(s),
	})
}

// Export handles GET /api/v1/sessions/{code}/export
// Responds with the CSV score table as a download.
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	s, err := h.sessionController.GetSession(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	data, err := h.exportService.CSV(s)
	if err != nil {
		WriteError(w, err)
		return
	}

	filename := h.exportService.Filename(h.clock.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Share handles GET /api/v1/sessions/{code}/share
func (h *SessionHandler) Share(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	s, err := h.sessionController.GetSession(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	snapshot, err := h.shareService.Encode(s)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Share{Snapshot: snapshot})
}

// Import handles POST /api/v1/sessions/import
func (h *SessionHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req request.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid JSON body"))
		return
	}

	snapshot, err := h.shareService.Decode(req.Snapshot)
	if err != nil {
		WriteError(w, err)
		return
	}

	s, err := h.sessionController.ImportSession(r.Context(), snapshot)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(s))
}

// Reset handles POST /api/v1/sessions/{code}/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	s, err := h.sessionController.Reset(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// Delete handles DELETE /api/v1/sessions/{code}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	if err := h.sessionController.DeleteSession(r.Context(), code); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
