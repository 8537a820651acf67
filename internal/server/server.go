// Package server serves the web dashboard and its JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"AntarcticExplorer/internal/stats"
	"AntarcticExplorer/internal/view"
)

// Config wires the server to the published view.
type Config struct {
	Addr     string
	Title    string
	Interval time.Duration
	Cell     *view.Cell
	Session  *stats.Session
	// Metrics defaults to promhttp.Handler().
	Metrics http.Handler
	Logger  *slog.Logger
}

// Server provides the dashboard, JSON API, chart, metrics and health endpoints.
type Server struct {
	cfg    Config
	server *http.Server
	logger *slog.Logger
	addr   net.Addr
}

// New creates a dashboard server.
func New(cfg Config) *Server {
	if cfg.Metrics == nil {
		cfg.Metrics = promhttp.Handler()
	}
	s := &Server{cfg: cfg, logger: cfg.Logger}
	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
	return s
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/latest", s.handleLatest)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/view", s.handleView)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /chart.png", s.handleChart)
	mux.Handle("GET /metrics", s.cfg.Metrics)
	mux.HandleFunc("GET /healthz", healthHandler)
	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// Start binds the listen address, then serves in a goroutine. A bind failure
// is returned. Use Shutdown to stop.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	s.addr = ln.Addr()
	s.logger.Info("dashboard_server_starting", "addr", s.addr.String())
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("dashboard_server_error", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	return s.addr
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Debug("dashboard_server_shutting_down")
	return s.server.Shutdown(ctx)
}
