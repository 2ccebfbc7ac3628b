// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	journalhandler "github.com/flipdeck/flipdeck/internal/api/handler/journal"
	"github.com/flipdeck/flipdeck/internal/api/middleware"
	"github.com/flipdeck/flipdeck/internal/metrics"
)

// Server serves the journal analytics API.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration
type Config struct {
	Host        string
	Port        int
	APIKey      string
	MetricsPath string
}

// Dependencies holds everything the routes need.
type Dependencies struct {
	Source   journalhandler.Source
	Registry *metrics.Registry
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
	}

	s.setupRoutes(cfg, deps)
	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config, deps Dependencies) {
	h := journalhandler.NewHandler(deps.Source)

	api := http.NewServeMux()
	api.HandleFunc("/api/summary", h.Summary)
	api.HandleFunc("/api/equity", h.Equity)
	api.HandleFunc("/api/monthly", h.Monthly)
	api.HandleFunc("/api/distribution", h.Distribution)
	api.HandleFunc("/api/consistency", h.Consistency)
	api.HandleFunc("/api/patterns", h.Patterns)
	api.HandleFunc("/api/strategies", h.Strategies)
	api.HandleFunc("/api/goals", h.Goals)
	api.HandleFunc("/api/phases", h.Phases)
	api.HandleFunc("/api/warnings", h.Warnings)

	// Health stays outside auth so uptime checks don't need the key.
	s.mux.HandleFunc("/api/health", s.handleHealth)

	var protected http.Handler = api
	protected = middleware.APIKeyAuth(cfg.APIKey)(protected)
	if deps.Registry != nil {
		protected = metrics.HTTPMiddleware(deps.Registry)(protected)
	}
	protected = metrics.LoggingMiddleware(s.logger)(protected)
	s.mux.Handle("/api/", protected)

	if deps.Registry != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle(path, promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
