// Package server exposes the transcript acquisition pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Deidrajw/youtube-transcript-api/internal/pipeline"
	"github.com/Deidrajw/youtube-transcript-api/internal/transcript"
)

// ServiceName and Version identify the service in introspection responses.
const (
	ServiceName = "YouTube Transcript Service"
	Version     = "1.0.0"
)

// Acquirer runs one transcript acquisition. Implemented by pipeline.Orchestrator.
type Acquirer interface {
	Acquire(ctx context.Context, req pipeline.Request) (*transcript.Result, error)
}

// Server holds the HTTP layer's collaborators.
type Server struct {
	apiKey   string
	acquirer Acquirer
	logger   *zap.Logger
}

// New creates a Server. apiKey is the shared request-authentication secret;
// when empty, authentication is disabled.
func New(apiKey string, acquirer Acquirer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		apiKey:   apiKey,
		acquirer: acquirer,
		logger:   logger,
	}
}

// Run serves the router on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
