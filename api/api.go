package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/mux"

	"devserve/config"
	"devserve/logger"
)

// Server serves the files of one root directory
type Server struct {
	router *mux.Router
	server *http.Server
	cfg    *config.Config
	files  http.FileSystem
	log    *logger.Logger
}

// NewServer creates a server for files rooted at fsys
func NewServer(cfg *config.Config, fsys http.FileSystem) *Server {
	s := &Server{
		router: mux.NewRouter(),
		cfg:    cfg,
		files:  fsys,
		log:    logger.L(),
	}
	// Initialize routes
	s.setupRoutes()
	return s
}

// Handler returns the router wrapped in the request log and CORS middleware.
// The CORS middleware sits outside the router so that redirects and 501s
// produced by the router itself carry the headers too.
func (s *Server) Handler() http.Handler {
	return RequestLogMiddleware(s.log)(CORSMiddleware(s.router))
}

// Listen binds the configured address
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	return ln, nil
}

// Serve accepts connections on ln until ctx is cancelled, then shuts the
// server down. A cancelled context is a clean stop and returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.server = &http.Server{
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting file server", map[string]interface{}{
			"addr": ln.Addr().String(),
			"root": s.cfg.Root,
		})
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("file server error: %w", err)
	case <-ctx.Done():
	}

	if err := s.Shutdown(); err != nil {
		s.log.Error("Graceful shutdown failed, closing connections", map[string]interface{}{
			"error": err.Error(),
		})
		s.server.Close()
	}
	<-errCh
	return nil
}

// Run binds the configured address and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	s.log.Info("Shutting down file server", nil)

	// Create a timeout context for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
	}

	return nil
}
