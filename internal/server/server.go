// Package server implements the vizforge HTTP API.
//
// The server exposes the compilation pipeline over three routes:
//
//	GET  /health        liveness probe with build info
//	POST /api/generate  full compilation, JSON envelope response
//	GET  /api/render    single-format compilation, raw bytes response
//	GET  /              minimal demo page driving /api/render
//
// All compilation goes through a shared pipeline.Runner, so CLI and server
// behavior stays identical.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vizforge/vizforge/internal/config"
	"github.com/vizforge/vizforge/pkg/pipeline"
)

// Server wires the router, pipeline runner, and configuration.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    config.ServerConfig
	router chi.Router
}

// New creates a server around an existing runner.
func New(runner *pipeline.Runner, logger *log.Logger, cfg config.ServerConfig) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger,
		cfg:    cfg,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(chimw.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Post("/api/generate", s.handleGenerate)
	r.Get("/api/render", s.handleRender)
	r.Get("/", s.handleIndex)

	s.router = r
	return s
}

// Handler returns the root http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Listen,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout.Duration,
		WriteTimeout: s.cfg.WriteTimeout.Duration,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
