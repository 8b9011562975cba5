package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/skyjoscore/internal/api/handler"
	apimiddleware "github.com/mcoot/skyjoscore/internal/api/middleware"
	"github.com/mcoot/skyjoscore/internal/dependencies/clock"
	"github.com/mcoot/skyjoscore/internal/middleware"
	"github.com/mcoot/skyjoscore/internal/services/chart"
	"github.com/mcoot/skyjoscore/internal/services/export"
	"github.com/mcoot/skyjoscore/internal/services/session"
	"github.com/mcoot/skyjoscore/internal/services/share"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	SessionController *session.Controller
	ChartService      *chart.Service
	ExportService     *export.Service
	ShareService      *share.Service
	Clock             clock.Clock
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(
		cfg.SessionController,
		cfg.ChartService,
		cfg.ExportService,
		cfg.ShareService,
		cfg.Clock,
	)

	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)
	loggingMiddleware := middleware.Logging(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Session routes
	api.HandleFunc("/sessions", sessionHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/sessions/import", sessionHandler.Import).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{code}", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{code}", sessionHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{code}/config", sessionHandler.Configure).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{code}/rounds", sessionHandler.SubmitRound).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{code}/standings", sessionHandler.Standings).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{code}/chart", sessionHandler.Chart).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{code}/export", sessionHandler.Export).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{code}/share", sessionHandler.Share).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{code}/reset", sessionHandler.Reset).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
