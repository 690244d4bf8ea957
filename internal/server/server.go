// Package server exposes the design engine over HTTP and publishes its
// OpenAPI document.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/cwbudde/filterforge/internal/config"
)

// Version is reported by /health and the OpenAPI document.
const Version = "1.0.0"

const shutdownTimeout = 30 * time.Second

// Server wires the router, middleware and API operations.
type Server struct {
	cfg    *config.Config
	log    zerolog.Logger
	router *chi.Mux
	api    huma.API
}

// New builds a server for cfg. Nothing listens until Run.
func New(cfg *config.Config, logger zerolog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(requestID)
	router.Use(middleware.RealIP)
	router.Use(zerologLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))
	router.Use(middleware.Compress(5))

	api := NewAPI(router)
	Register(api, Options{ResponsePoints: cfg.Design.ResponsePoints})

	return &Server{cfg: cfg, log: logger, router: router, api: api}
}

// NewAPI creates the huma API on router with the document served at
// /api/openapi.json and interactive docs at /api/docs.
func NewAPI(router chi.Router) huma.API {
	hc := huma.DefaultConfig("FilterForge API", Version)
	hc.Info.Description = "Analog filter design: transfer functions, responses and component values."
	hc.DocsPath = "/api/docs"
	hc.OpenAPIPath = "/api/openapi"

	return humachi.New(router, hc)
}

// Handler is the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// API is the registered huma API.
func (s *Server) API() huma.API { return s.api }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Server.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)

	go func() {
		s.log.Info().Str("addr", srv.Addr).Str("env", s.cfg.Server.Env).Msg("Starting FilterForge API server")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}

		close(errc)
	}()

	select {
	case err, ok := <-errc:
		if ok {
			return fmt.Errorf("server: listen: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	s.log.Info().Msg("Server exited")

	return nil
}

// OpenAPI renders the API document without starting a server. format is
// "json" or "yaml".
func OpenAPI(format string) ([]byte, error) {
	api := NewAPI(chi.NewRouter())
	Register(api, Options{})

	switch format {
	case "", "json":
		return api.OpenAPI().MarshalJSON()
	case "yaml":
		return api.OpenAPI().YAML()
	default:
		return nil, fmt.Errorf("server: unknown schema format %q", format)
	}
}
