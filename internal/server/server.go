// Package server wires the calendar handlers into an http.Handler.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/wallcal/internal/calendar"
	"github.com/dukerupert/wallcal/internal/config"
	"github.com/dukerupert/wallcal/internal/handler"
	"github.com/dukerupert/wallcal/internal/middleware"
	ws "github.com/dukerupert/wallcal/internal/websocket"
)

const (
	authFailureLimit  = 10
	authFailureWindow = time.Minute
)

type Server struct {
	hub      *ws.Hub
	stateH   *handler.StateHandler
	eventH   *handler.EventHandler
	editorH  *handler.EditorHandler
	themeH   *handler.ThemeHandler
	auth     *config.BasicAuthConfig
	clientIP func(*http.Request) string
	failures *middleware.FailureLimiter
	logger   *slog.Logger
}

// New builds the server from cfg's access settings. Without basic_auth the
// API is open.
func New(cal *calendar.Calendar, cfg *config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	return &Server{
		hub:      hub,
		stateH:   handler.NewStateHandler(cal),
		eventH:   handler.NewEventHandler(cal, hub, logger.With("component", "events")),
		editorH:  handler.NewEditorHandler(cal, hub),
		themeH:   handler.NewThemeHandler(cal, hub),
		auth:     cfg.BasicAuth,
		clientIP: middleware.ClientIP(cfg.TrustProxy),
		failures: middleware.NewFailureLimiter(authFailureLimit, authFailureWindow),
		logger:   logger,
	}
}

// Hub returns the websocket hub so the caller can close it on shutdown.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()
	outerMux.HandleFunc("GET /health", s.healthHandler)

	protectedMux := http.NewServeMux()
	s.registerRoutes(protectedMux)

	if s.auth != nil {
		authMiddleware := middleware.BasicAuth(s.auth.Username, s.auth.PasswordHash, s.failures, s.clientIP, s.logger.With("component", "auth"))
		outerMux.Handle("/", authMiddleware(protectedMux))
	} else {
		outerMux.Handle("/", protectedMux)
	}

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	// View state
	mux.HandleFunc("GET /api/grid", s.stateH.Grid)
	mux.HandleFunc("GET /api/state", s.stateH.State)
	mux.HandleFunc("PUT /api/state/view", s.stateH.SetView)
	mux.HandleFunc("POST /api/state/navigate", s.stateH.Navigate)
	mux.HandleFunc("POST /api/state/drill", s.stateH.DrillDown)
	mux.HandleFunc("PUT /api/state/query", s.stateH.SetQuery)
	mux.HandleFunc("POST /api/state/today", s.stateH.Today)
	mux.HandleFunc("GET /api/holidays", s.stateH.Holidays)

	// Events
	mux.HandleFunc("GET /api/events", s.eventH.List)
	mux.HandleFunc("POST /api/events", s.eventH.Create)
	mux.HandleFunc("GET /api/events.ics", s.eventH.ExportICS)
	mux.HandleFunc("GET /api/events/{id}", s.eventH.Get)
	mux.HandleFunc("PUT /api/events/{id}", s.eventH.Update)
	mux.HandleFunc("DELETE /api/events/{id}", s.eventH.Delete)

	// Event form
	mux.HandleFunc("POST /api/editor", s.editorH.New)
	mux.HandleFunc("POST /api/editor/{id}", s.editorH.Edit)
	mux.HandleFunc("POST /api/editor/submit", s.editorH.Submit)
	mux.HandleFunc("POST /api/editor/cancel", s.editorH.Cancel)
	mux.HandleFunc("DELETE /api/editor", s.editorH.Delete)

	// Theme
	mux.HandleFunc("GET /api/theme", s.themeH.Get)
	mux.HandleFunc("PUT /api/theme", s.themeH.Set)
	mux.HandleFunc("POST /api/theme/toggle", s.themeH.Toggle)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"clients": s.hub.ClientCount(),
	})
}
