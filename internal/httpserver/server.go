// Package httpserver runs the status endpoint of the keepalive daemon.
package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-ozzo/ozzo-validation/is"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultGracePeriod  = 5 * time.Second
)

type options struct {
	readTimeout  time.Duration
	writeTimeout time.Duration
	gracePeriod  time.Duration
	logger       *slog.Logger
}

// Option configures a Server.
type Option func(*options)

func WithReadTimeout(d time.Duration) Option {
	return func(o *options) {
		o.readTimeout = d
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) {
		o.writeTimeout = d
	}
}

// WithGracePeriod bounds how long Shutdown waits for open connections.
func WithGracePeriod(d time.Duration) Option {
	return func(o *options) {
		o.gracePeriod = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Server wraps http.Server with validation and graceful shutdown.
type Server struct {
	server *http.Server
	opts   options
}

// New creates a server for handler on addr. The address is validated before
// the server is created.
func New(addr string, handler http.Handler, opts ...Option) (*Server, error) {
	if err := validateHost(addr); err != nil {
		return nil, err
	}

	o := options{
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
		gracePeriod:  defaultGracePeriod,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	srv := &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  o.readTimeout,
			WriteTimeout: o.writeTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		opts: o,
	}

	return srv, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start listens until the server is shut down. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.opts.logger.Info("Status server listening", slog.String("address", s.server.Addr))

	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown gracefully stops the server within the grace period.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.opts.gracePeriod)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.opts.logger.Error("Status server shutdown failed", slog.Any("err", err))
		return err
	}

	s.opts.logger.Info("Status server stopped")
	return nil
}

func validateHost(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cant be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}
