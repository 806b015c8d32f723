package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// Server runs the HTTP API and stops it on SIGINT, SIGTERM or when the
// context given to Run ends.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	hooks           []func(ctx context.Context)
}

// NewServer creates a Server listening on port. The write timeout leaves room
// for large arrangement exports.
func NewServer(handler http.Handler, port string) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
		shutdownTimeout: 10 * time.Second,
	}
}

// OnShutdown registers fn to run after the HTTP server has stopped, in
// registration order.
func (s *Server) OnShutdown(fn func(ctx context.Context)) {
	s.hooks = append(s.hooks, fn)
}

// Run serves until a shutdown signal arrives or ctx ends, then shuts down.
// A listener error is returned without running the shutdown hooks.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.httpServer.Addr).Msg("Server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutdown requested")
	}
	return s.Shutdown()
}

// Shutdown drains in-flight requests, then runs the shutdown hooks with the
// same deadline.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	for _, hook := range s.hooks {
		hook(ctx)
	}
	if err != nil {
		return err
	}

	log.Info().Msg("Server stopped gracefully")
	return nil
}
