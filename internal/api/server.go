// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/nyan/internal/catalog"
	"github.com/taibuivan/nyan/internal/identity"
	"github.com/taibuivan/nyan/internal/platform/config"
	"github.com/taibuivan/nyan/internal/platform/constants"
	"github.com/taibuivan/nyan/internal/platform/metrics"
	"github.com/taibuivan/nyan/internal/platform/middleware"
	"github.com/taibuivan/nyan/internal/social/activity"
	"github.com/taibuivan/nyan/internal/social/comment"
	"github.com/taibuivan/nyan/internal/social/favorite"
	"github.com/taibuivan/nyan/internal/social/rating"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Identity handles registration, login and the current account.
	Identity *identity.Handler

	// Catalog lists and creates manga.
	Catalog *catalog.Handler

	Favorite *favorite.Handler
	Rating   *rating.Handler
	Comment  *comment.Handler

	// Activity serves the manga detail and user profile pages.
	Activity *activity.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// The rate limiter's janitor runs until ctx is cancelled.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, recorder *metrics.Metrics, h Handlers) *Server {
	r := chi.NewRouter()

	limiter := middleware.NewRateLimiter(constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)
	go limiter.Janitor(ctx)

	// # Middleware Chain
	// Global middleware applied in order of execution.
	// CORS sits before rate limiting and authentication so browsers can
	// read their 429 and 401 bodies.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.Metrics(recorder))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(limiter.Middleware)
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if cfg.MetricsEnabled && recorder != nil {
		r.Method(http.MethodGet, "/metrics", recorder.Handler())
	}

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Identity.Routes())

		// Several components share the /mangas prefix.
		api.Route("/mangas", func(mangas chi.Router) {
			h.Catalog.RegisterRoutes(mangas)
			h.Activity.RegisterRoutes(mangas)
			h.Favorite.RegisterRoutes(mangas)
			h.Rating.RegisterRoutes(mangas)
			h.Comment.RegisterRoutes(mangas)
		})

		api.Mount("/comments", h.Comment.Routes())
		api.Mount("/profiles", h.Activity.ProfileRoutes())
	})

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

// Handler exposes the fully wired router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
