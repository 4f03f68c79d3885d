package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/gyeh/claimstats/internal/config"
)

// defaultMaxUpload caps uploads when the config leaves it unset.
const defaultMaxUpload = 64 << 20

// Server exposes the claims pipeline over HTTP.
type Server struct {
	log    zerolog.Logger
	cfg    *config.Config
	store  *datasetStore
	router *mux.Router
}

// New builds a Server and its routes.
func New(log zerolog.Logger, cfg *config.Config) *Server {
	s := &Server{
		log:   log,
		cfg:   cfg,
		store: newDatasetStore(),
	}

	r := mux.NewRouter()
	r.Use(requestLogger(log), recoverer(log))
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/datasets", s.handleUpload).Methods(http.MethodPost)

	ds := r.PathPrefix("/datasets/{id}").Subrouter()
	ds.HandleFunc("/claims", s.handleClaims).Methods(http.MethodGet)
	ds.HandleFunc("/monthly", s.handleMonthly).Methods(http.MethodGet)
	ds.HandleFunc("/summary", s.handleSummary).Methods(http.MethodGet)
	ds.HandleFunc("/export", s.handleExport).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "no such route")
	})
	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) maxUpload() int64 {
	if s.cfg.MaxUploadBytes > 0 {
		return s.cfg.MaxUploadBytes
	}
	return defaultMaxUpload
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.ListenAddr(),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Msg("starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info().Msg("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
