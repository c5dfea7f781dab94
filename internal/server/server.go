// Package server exposes the essay analyzer over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/abhisek/essaylens/internal/analysis"
	"github.com/abhisek/essaylens/internal/logging"
	"github.com/abhisek/essaylens/internal/metrics"
)

// Analyzer is the analysis entry point the handlers call.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) *analysis.Result
}

// Options configures a Server. Analyzer is required.
type Options struct {
	Addr            string
	Analyzer        Analyzer
	Logger          logging.Logger
	Metrics         *metrics.Metrics
	Version         string
	AnalysisTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

// Server is the HTTP front end of the analyzer.
type Server struct {
	srv             *http.Server
	handler         http.Handler
	log             logging.Logger
	shutdownTimeout time.Duration
}

// New builds a Server and its route tree.
func New(opts Options) (*Server, error) {
	if opts.Analyzer == nil {
		return nil, fmt.Errorf("server: analyzer is required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	log := opts.Logger.Named("server")
	handler := NewRouter(RouterConfig{
		Analyzer:        opts.Analyzer,
		Logger:          log,
		Metrics:         opts.Metrics,
		Version:         opts.Version,
		AnalysisTimeout: opts.AnalysisTimeout,
		MaxBodyBytes:    opts.MaxBodyBytes,
	})
	return &Server{
		handler: handler,
		log:     log,
		srv: &http.Server{
			Addr:              opts.Addr,
			Handler:           handler,
			ReadHeaderTimeout: opts.ReadTimeout,
			ReadTimeout:       opts.ReadTimeout,
			WriteTimeout:      opts.WriteTimeout,
		},
		shutdownTimeout: opts.ShutdownTimeout,
	}, nil
}

// Handler returns the route tree.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", logging.String("addr", ln.Addr().String()))
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
