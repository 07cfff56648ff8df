// Copyright (c) 2026 Dugout. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/dugout are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dugoutlab/dugout/internal/platform/config"
	"github.com/dugoutlab/dugout/internal/platform/constants"
	"github.com/dugoutlab/dugout/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once by the serve command with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// RouteRegistrar is implemented by every domain handler.
type RouteRegistrar interface {
	RegisterRoutes(router chi.Router)
}

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	Players      RouteRegistrar
	Tags         RouteRegistrar
	Drills       RouteRegistrar
	Concepts     RouteRegistrar
	Encyclopedia RouteRegistrar
	Assignments  RouteRegistrar
	Sessions     RouteRegistrar

	// UploadPrefix is the public URL prefix of stored files, e.g. "/uploads".
	UploadPrefix string
	// Uploads serves stored files read-only.
	Uploads http.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// ctx bounds background work owned by the middleware (the rate limiter sweeper).
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := NewRouter(ctx, cfg, log, verifier, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the routing tree without binding a listener.
func NewRouter(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.Trace())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.NewRateLimiter(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst).Middleware)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	if h.Uploads != nil && h.UploadPrefix != "" {
		r.Handle(h.UploadPrefix+"/*", h.Uploads)
	}

	// # Application API
	r.Group(func(api chi.Router) {
		api.Use(middleware.Authenticate(verifier))
		api.Use(middleware.RequireAuthForWrites(cfg.AuthRequired))

		mount(api, "/players", h.Players)
		mount(api, "/tags", h.Tags)
		mount(api, "/drills", h.Drills)
		mount(api, "/concepts", h.Concepts)
		mount(api, "/encyclopedia", h.Encyclopedia)
		mount(api, "/player-drills", h.Assignments)
		mount(api, "/sessions", h.Sessions)
	})

	return r
}

func mount(router chi.Router, pattern string, registrar RouteRegistrar) {
	if registrar == nil {
		return
	}
	router.Route(pattern, registrar.RegisterRoutes)
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
