package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/skyjoscore/internal/dependencies/clock"
	"github.com/mcoot/skyjoscore/internal/services/chart"
	"github.com/mcoot/skyjoscore/internal/services/export"
	"github.com/mcoot/skyjoscore/internal/services/session"
	"github.com/mcoot/skyjoscore/internal/services/share"
	"github.com/mcoot/skyjoscore/internal/web/handler"
	"github.com/mcoot/skyjoscore/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger            *slog.Logger
	SessionController *session.Controller
	ChartService      *chart.Service
	ExportService     *export.Service
	ShareService      *share.Service
	Clock             clock.Clock
	StaticDir         string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	sessionCodeMiddleware := middleware.SessionCode()

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	homeHandler := handler.NewHomeHandler()
	sessionHandler := handler.NewSessionHandler(
		cfg.SessionController,
		cfg.ChartService,
		cfg.ExportService,
		cfg.ShareService,
		cfg.Clock,
		cfg.Logger,
	)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Page routes
	pagesRouter := r.NewRoute().Subrouter()
	pagesRouter.Use(flashMiddleware)
	pagesRouter.Use(sessionCodeMiddleware)

	pagesRouter.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)

	// Game routes
	pagesRouter.HandleFunc("/session", sessionHandler.Create).Methods(http.MethodPost)
	pagesRouter.HandleFunc("/session/join", sessionHandler.JoinByForm).Methods(http.MethodPost)
	pagesRouter.HandleFunc("/session/import", sessionHandler.Import).Methods(http.MethodPost)
	pagesRouter.HandleFunc("/session/leave", sessionHandler.Leave).Methods(http.MethodPost)
	pagesRouter.HandleFunc("/session/{code}", sessionHandler.View).Methods(http.MethodGet)
	pagesRouter.HandleFunc("/session/{code}/config", sessionHandler.Configure).Methods(http.MethodPost)
	pagesRouter.HandleFunc("/session/{code}/scores", sessionHandler.SubmitScores).Methods(http.MethodPost)
	pagesRouter.HandleFunc("/session/{code}/reset", sessionHandler.Reset).Methods(http.MethodPost)
	pagesRouter.HandleFunc("/session/{code}/export", sessionHandler.Export).Methods(http.MethodGet)

	return r
}
