// Package server exposes the cavity solver over a JSON HTTP API and serves
// the sweep charts.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/shgcavity/cavity"
	"github.com/AnkushinDaniil/shgcavity/store"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	store   *store.Store
	samples int
	router  chi.Router
}

// New builds the router. samples is the default sweep size, capped at
// maxSamples. st may be nil, in which case the preset and
// history routes are not mounted.
func New(st *store.Store, samples int) *Server {
	if samples <= 0 {
		samples = cavity.DefaultSamples
	}
	samples = min(samples, maxSamples)
	s := &Server{store: st, samples: samples}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/chart", s.handleChart)

	r.Route("/api", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Post("/sweep", s.handleSweep)
		r.Post("/bounds", s.handleBounds)

		if st == nil {
			return
		}
		r.Get("/solutions", s.handleSolutions)
		r.Route("/presets", func(r chi.Router) {
			r.Get("/", s.handleListPresets)
			r.Get("/{name}", s.handleGetPreset)
			r.Put("/{name}", s.handlePutPreset)
			r.Delete("/{name}", s.handleDeletePreset)
			r.Post("/{name}/solve", s.handleSolvePreset)
		})
	})

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("Server stopped")
	return nil
}
