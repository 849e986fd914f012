// Package server exposes poster rendering over HTTP.
//
// # Routes
//
//	GET    /healthz
//	GET    /v1/palettes/{mode}?count=&base_hue=&seed=
//	POST   /v1/render?format=&scale=          body: poster config JSON
//	POST   /v1/posters?formats=               render and save to the gallery
//	GET    /v1/posters?limit=
//	GET    /v1/posters/{id}
//	GET    /v1/posters/{id}/image?format=&scale=
//	DELETE /v1/posters/{id}
//
// Errors are JSON objects {"code", "message", "param"} with the status
// derived from the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/posterforge/pkg/cache"
	"github.com/matzehuels/posterforge/pkg/gallery"
	"github.com/matzehuels/posterforge/pkg/pipeline"
)

// Limits.
const (
	DefaultAddr     = ":8080"
	MaxBodyBytes    = 1 << 20
	MaxPaletteCount = 64
	shutdownTimeout = 10 * time.Second
	readHeaderLimit = 5 * time.Second
)

// Config wires a Server.
type Config struct {
	Runner *pipeline.Runner
	Store  gallery.Store
	Logger *log.Logger
}

// Server handles HTTP requests.
type Server struct {
	runner *pipeline.Runner
	store  gallery.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil Runner renders without caching and a nil
// Store keeps the gallery in memory.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = gallery.NewMemoryStore()
	}
	s := &Server{
		runner: cfg.Runner,
		store:  cfg.Store,
		logger: cfg.Logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/palettes/{mode}", s.handlePalette)
		r.Post("/render", s.handleRender)
		r.Route("/posters", func(r chi.Router) {
			r.Post("/", s.handleCreatePoster)
			r.Get("/", s.handleListPosters)
			r.Get("/{id}", s.handleGetPoster)
			r.Get("/{id}/image", s.handlePosterImage)
			r.Delete("/{id}", s.handleDeletePoster)
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: readHeaderLimit,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases the runner cache and the gallery store.
func (s *Server) Close() error {
	return errors.Join(s.runner.Close(), s.store.Close())
}

func (s *Server) cache() (cache.Cache, cache.Keyer) {
	return s.runner.Cache, s.runner.Keyer
}
