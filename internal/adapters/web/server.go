package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

const shutdownGrace = 5 * time.Second

// Server owns the HTTP listener for the serve command.
type Server struct {
	srv    *http.Server
	logger ports.Logger
}

// NewServer creates a Server for the given address and handler.
func NewServer(addr string, handler http.Handler, logger ports.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is canceled, then shuts down gracefully. In-flight
// requests (and their detached persists) get shutdownGrace to finish.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	s.logger.Info("serving compiled artifacts", "addr", s.srv.Addr)

	select {
	case err := <-errCh:
		return zerr.Wrap(err, "server failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return zerr.Wrap(err, "shutdown failed")
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return zerr.Wrap(err, "server failed")
	}
	return nil
}
