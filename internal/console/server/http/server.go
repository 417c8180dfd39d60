package http

import (
	"context"
	"net/http"
	"time"

	"github.com/AktanAlmazovich/Fleet-manager/pkg/log"
	"github.com/AktanAlmazovich/Fleet-manager/pkg/options"
)

// Server hosts the console REST API plus health and metrics endpoints.
type Server struct {
	server  *http.Server
	options *options.HttpOptions
}

// NewServer wraps the handler's router into an HTTP server.
func NewServer(opts *options.HttpOptions, h *Handler) *Server {
	return &Server{
		server: &http.Server{
			Addr:         opts.Addr,
			Handler:      h.Router(),
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
		},
		options: opts,
	}
}

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	log.Info("Starting HTTP Server", "addr", s.server.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}
