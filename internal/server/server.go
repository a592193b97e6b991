// Package server is the browser-facing surface: upload, results, exports and
// a small JSON API over the session state.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/pipeline"
	"github.com/nguyentantai21042004/lecture-notes/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// EventLister reads a session's recorded stage events.
type EventLister interface {
	ListSessionEvents(ctx context.Context, sessionID string, limit int) ([]pipeline.Event, error)
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080)
	Port int
	// MaxUploadMB caps the request body of POST /upload.
	MaxUploadMB int64
	// TempDir receives uploads while the pipeline runs.
	TempDir string

	Pipeline pipeline.Pipeline
	Sessions session.Store
	Events   EventLister
	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
	// SetupError blocks uploads, e.g. missing credentials.
	SetupError error

	Logger logger.Logger
}

// Server is the HTTP server.
type Server struct {
	httpServer *http.Server
	cfg        Config
	templates  *template.Template
	logger     logger.Logger
}

// New creates a Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 200
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	if cfg.Pipeline == nil && cfg.SetupError == nil {
		return nil, errors.New("pipeline is required")
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"inc":   func(i int) int { return i + 1 },
		"deref": func(s *string) string { return *s },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		templates: tmpl,
		logger:    cfg.Logger,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:        net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:     mux,
		ReadTimeout: 5 * time.Minute,
		// Uploads block on the whole pipeline before responding.
		WriteTimeout: 30 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info(ctx, "Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
