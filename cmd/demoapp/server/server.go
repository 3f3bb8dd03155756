// Package server provides an importable HTTP server that stands in for the
// Buggy Cars Rating site. E2E tests start it on a random port; the demoapp
// command serves it on a fixed one.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Eruoni/buggy.justestit/internal/logging"
)

// Config holds server configuration options.
type Config struct {
	Addr         string        // Listen address (e.g., ":8080" or ":0" for random port)
	ReadTimeout  time.Duration // HTTP read timeout
	WriteTimeout time.Duration // HTTP write timeout

	// ConfirmDelay is how long the model page waits after a successful vote
	// before showing the confirmation and the new review row.
	ConfirmDelay time.Duration

	Logger *zap.Logger
}

// DefaultConfig returns a configuration suitable for testing.
// Uses ":0" to bind to a random available port.
func DefaultConfig() Config {
	return Config{
		Addr:         ":0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ConfirmDelay: 200 * time.Millisecond,
	}
}

// Server serves the demo site from an in-memory Store.
type Server struct {
	cfg        Config
	store      *Store
	logger     *zap.Logger
	httpServer *http.Server
	listener   net.Listener
	addr       string
	mu         sync.Mutex
	running    bool
}

// NewServer creates a new server with the given configuration.
// The server is not started until Start() is called.
func NewServer(cfg Config) (*Server, error) {
	if cfg.ConfirmDelay < 0 {
		return nil, fmt.Errorf("confirm delay must not be negative, got %s", cfg.ConfirmDelay)
	}
	s := &Server{
		cfg:    cfg,
		store:  NewStore(),
		logger: logging.OrNop(cfg.Logger),
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleHome)
	r.Post("/login", s.handleLogin)
	r.Get("/logout", s.handleLogout)
	r.Get("/register", s.handleRegisterForm)
	r.Post("/register", s.handleRegister)
	r.Get("/model/{id}", s.handleModel)
	r.Post("/api/model/{id}/vote", s.handleVote)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Store exposes the backing store so tests can seed users.
func (s *Server) Store() *Store { return s.store }

// Start begins listening and serving HTTP requests.
// Returns the actual address the server is listening on (useful when port is 0).
// This method is non-blocking - the server runs in a goroutine.
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return s.addr, nil
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = ln
	s.addr = ln.Addr().String()
	s.running = true

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("demo server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("demo server listening", zap.String("addr", s.addr))
	return s.addr, nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	return s.httpServer.Shutdown(ctx)
}

// ListenAndServe starts a server for cfg and serves until ctx is cancelled,
// then shuts it down with a five second grace period.
func ListenAndServe(ctx context.Context, cfg Config) error {
	srv, err := NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	if _, err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	srv.logger.Info("demo site ready", zap.String("url", srv.URL()))

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Addr returns the address the server is listening on.
// Returns empty string if server is not running.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// URL returns the base URL of the running server, using 127.0.0.1 when the
// listener is bound to all interfaces.
func (s *Server) URL() string {
	addr := s.Addr()
	if addr == "" {
		return ""
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "::" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}
