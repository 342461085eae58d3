package diag

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"
)

// DefaultAddr is the default address the diagnostics server binds to.
const DefaultAddr = "127.0.0.1:9464"

// Config controls the HTTP server behaviour.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// Logger receives request logs. Nil uses the standard logger.
	Logger *log.Logger
}

// Server serves the diagnostics endpoints for a Registry.
type Server struct {
	cfg        Config
	httpServer *http.Server
}

func NewServer(cfg Config, reg *Registry) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(reg, cfg.Logger),
		ReadTimeout:       chooseDuration(cfg.ReadTimeout, 5*time.Second),
		ReadHeaderTimeout: chooseDuration(cfg.ReadTimeout, 5*time.Second),
		WriteTimeout:      chooseDuration(cfg.WriteTimeout, 5*time.Second),
		IdleTimeout:       chooseDuration(cfg.IdleTimeout, 60*time.Second),
	}

	return &Server{cfg: cfg, httpServer: srv}
}

// Start launches the HTTP server using ListenAndServe.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// StartListener serves HTTP traffic on an explicit listener.
func (s *Server) StartListener(l net.Listener) error {
	return s.httpServer.Serve(l)
}

// Shutdown gracefully terminates the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler exposes the underlying router for testing.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func chooseDuration(candidate, fallback time.Duration) time.Duration {
	if candidate <= 0 {
		return fallback
	}
	return candidate
}
