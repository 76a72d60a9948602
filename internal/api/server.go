package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// Server is the HTTP front end of a Store.
type Server struct {
	config      *Config
	store       types.Store
	log         *zap.Logger
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	mu          sync.RWMutex
	ready       bool
}

// NewServer creates a server for store. A nil config uses DefaultConfig and
// a nil logger discards output.
func NewServer(config *Config, store types.Store, log *zap.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		config:      config,
		store:       store,
		log:         log,
		rateLimiter: rate.NewLimiter(config.RateLimit, config.RateLimitBurst),
	}
	s.httpServer = &http.Server{
		Addr:         config.Addr(),
		Handler:      s.setupRoutes(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
	return s
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// SetReady marks the server as ready to serve traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.SetReady(true)
	s.log.Info("starting server", zap.String("address", s.httpServer.Addr))

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.SetReady(false)
		return err
	}
}

// Shutdown stops accepting requests and waits up to the configured
// shutdown timeout for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.log.Info("shutting down server")
	return s.httpServer.Shutdown(shutdownCtx)
}

// Run serves store until ctx is cancelled or the process receives SIGINT or
// SIGTERM.
func Run(ctx context.Context, config *Config, store types.Store, log *zap.Logger) error {
	server := NewServer(config, store, log)

	server.log.Info("server config",
		zap.String("address", server.httpServer.Addr),
		zap.Float64("rateLimit", float64(server.config.RateLimit)),
		zap.Int("rateLimitBurst", server.config.RateLimitBurst),
		zap.Duration("readTimeout", server.config.ReadTimeout),
		zap.Duration("writeTimeout", server.config.WriteTimeout),
		zap.Duration("shutdownTimeout", server.config.ShutdownTimeout),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	server.log.Info("server stopped gracefully")
	return nil
}
