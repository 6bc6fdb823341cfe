package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/gymtrack/internal/ingest/garmin"
	"github.com/claude/gymtrack/internal/ingest/sheet"
	"github.com/claude/gymtrack/internal/storage"
	"github.com/claude/gymtrack/internal/view"
	"github.com/go-chi/chi/v5"
)

// defaultUserID is the single-user install's user. All data is keyed by user
// so an identity layer can be added without a schema change.
const defaultUserID = 1

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	view   *view.View
	sheet  *sheet.Provider
	garmin *garmin.Provider
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, v *view.View, sheetProvider *sheet.Provider, garminProvider *garmin.Provider, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		view:   v,
		sheet:  sheetProvider,
		garmin: garminProvider,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Ingest endpoints (API key required)
	s.router.Route("/api/v1/ingest", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/sheet", s.handleSheetIngest)
		r.Post("/garmin", s.handleGarminIngest)
	})

	// Derived data endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/sets", s.handleSets)
	s.router.Get("/api/v1/exercises", s.handleExercises)
	s.router.Get("/api/v1/streak", s.handleStreak)
	s.router.Get("/api/v1/prs", s.handlePersonalRecords)
	s.router.Get("/api/v1/progress", s.handleProgress)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/imports", s.handleImportLogs)
}
