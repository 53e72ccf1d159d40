// Package server wraps http.Server with signal handling and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ShutdownFunc releases a component's resources during shutdown.
type ShutdownFunc func(ctx context.Context) error

// Options configures the HTTP server.
type Options struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server runs an http.Server and coordinates shutdown of its dependencies.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	logger          *slog.Logger

	// closers run in reverse registration order after the listener stops,
	// so dependencies registered first (e.g. the database pool) close last.
	closers []namedCloser
}

type namedCloser struct {
	name string
	fn   ShutdownFunc
}

// New creates a Server serving handler.
func New(handler http.Handler, opts Options, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", opts.Port),
			Handler:      handler,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
		},
		shutdownTimeout: opts.ShutdownTimeout,
		logger:          logger,
	}
}

// OnShutdown registers fn to run during graceful shutdown. Registration must
// happen before Run.
func (s *Server) OnShutdown(name string, fn ShutdownFunc) {
	s.closers = append(s.closers, namedCloser{name: name, fn: fn})
}

// Run starts the listener and blocks until SIGINT/SIGTERM or a listener
// error, then drains in-flight requests and closes registered components.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-stop:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		return s.shutdown()
	}
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.httpServer.SetKeepAlivesEnabled(false)

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("http shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	for i := len(s.closers) - 1; i >= 0; i-- {
		c := s.closers[i]
		s.logger.Info("closing component", slog.String("name", c.name))
		if err := c.fn(ctx); err != nil {
			s.logger.Error("component close error",
				slog.String("name", c.name),
				slog.String("error", err.Error()),
			)
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	s.logger.Info("server stopped")
	return nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
