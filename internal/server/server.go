// Package server publishes rendered frames over HTTP for the panel
// controller and for browsers.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/tonhe/inkboard/internal/engine"
)

// Frames is the part of engine.Manager the server reads from.
type Frames interface {
	Latest(name string) (*engine.Frame, error)
	Refresh(name string) error
	ListEngines() []engine.EngineInfo
}

// Server routes requests to the latest frames.
type Server struct {
	frames Frames
	logger *slog.Logger
	access io.Writer
	router *mux.Router
}

// New builds a Server. access receives one Apache-style line per request
// and may be nil.
func New(frames Frames, logger *slog.Logger, access io.Writer) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{frames: frames, logger: logger, access: access}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/dashboards", s.list).Methods(http.MethodGet)
	r.HandleFunc("/dashboards/{name:[a-z0-9_-]+}.png", s.png).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/dashboards/{name:[a-z0-9_-]+}.raw", s.raw).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/dashboards/{name:[a-z0-9_-]+}/series.png", s.seriesChart).Methods(http.MethodGet)
	r.HandleFunc("/dashboards/{name:[a-z0-9_-]+}/refresh", s.refresh).Methods(http.MethodPost)
	return r
}

// Handler returns the router wrapped with panic recovery and, when an
// access writer was given, request logging.
func (s *Server) Handler() http.Handler {
	var h http.Handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(s.router)
	if s.access != nil {
		h = handlers.LoggingHandler(s.access, h)
	}
	return h
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server_listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
