// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package api wires together the HTTP router, middleware chain, and all
dashboard page handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/dashboard are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/order"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/product"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/subscription"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/upload"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/guard"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/config"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/middleware"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/respond"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/sec"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/storage"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/account"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/auth"
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

// Handlers groups all page handler sets.
//
// # Usage
//
// New pages add a field here and a mount below.
type Handlers struct {
	// Liveness is the /health handler, always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 200 when session storage answers.
	Readiness http.HandlerFunc

	// Home renders the dashboard landing page.
	Home *HomeHandler

	// Auth handles sign in, sign out and password recovery.
	Auth *auth.Handler

	// Account manages users and the principal's preferences.
	Account *account.Handler

	// Product manages the catalog.
	Product *product.Handler

	// Order manages customer orders.
	Order *order.Handler

	// Subscription serves the expiry countdown and the admin expiry pages.
	Subscription *subscription.Handler

	// Upload stores images for the product forms.
	Upload *upload.Handler
}

// # Server Initialization

/*
NewServer constructs the chi router with the full middleware chain and
registers all route groups.

Parameters:
  - context: Lifetime of background workers (rate limiter cleanup)
  - cfg: *config.Config
  - log: *slog.Logger
  - sessions: Shared storage holding every browser's session keys
  - h: Handlers
*/
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, sessions storage.Storage, h Handlers) *Server {
	r := chi.NewRouter()

	globalLimiter := middleware.NewRateLimiter(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)
	loginLimiter := middleware.NewRateLimiter(context, constants.LoginRateLimitRPS, constants.LoginRateLimitBurst)

	r.Use(middleware.RequestID())

	// # Infrastructure Endpoints
	// Health endpoints carry no browser session.
	r.Group(func(health chi.Router) {
		health.Use(middleware.StructuredLogger(log))
		health.Get("/health", h.Liveness)
		health.Get("/ready", h.Readiness)
	})

	// # Dashboard
	r.Group(func(app chi.Router) {
		// Session must precede the logger so requests are attributed to the principal.
		app.Use(middleware.Session(sessions, middleware.SessionOptions{
			CookieName: cfg.SessionCookieName,
			TTL:        cfg.SessionTTL,
			Secure:     cfg.CookieSecure,
		}, log))
		app.Use(middleware.StructuredLogger(log))
		app.Use(middleware.PanicRecovery(log))
		app.Use(globalLimiter.Handler)
		app.Use(middleware.CORS(cfg))
		app.Use(chimw.CleanPath)

		// Entry always forwards; the guard picks the target.
		app.With(middleware.Guard(guard.Entry)).Get(constants.PathRoot, func(writer http.ResponseWriter, request *http.Request) {
			respond.Redirect(writer, request, constants.PathDashboard)
		})

		// Signed-out pages.
		app.Group(func(public chi.Router) {
			public.Use(middleware.Guard(guard.PublicOnly))
			public.Use(chimw.Timeout(constants.GlobalRequestTimeout))
			h.Auth.PublicRoutes(public, loginLimiter.Handler)
		})

		// Signed-in endpoints outside /dashboard.
		app.Group(func(protected chi.Router) {
			protected.Use(middleware.Guard(guard.Protected))
			protected.Use(chimw.Timeout(constants.GlobalRequestTimeout))
			h.Auth.ProtectedRoutes(protected)
		})

		app.Route(constants.PathDashboard, func(dashboard chi.Router) {
			dashboard.Use(middleware.Guard(guard.Protected))

			// The event stream lives outside the request timeout.
			dashboard.Mount("/subscription", h.Subscription.Routes())

			dashboard.Group(func(page chi.Router) {
				page.Use(chimw.Timeout(constants.GlobalRequestTimeout))

				page.Get("/", h.Home.Show)
				page.Mount("/users", h.Account.Routes())
				page.Mount("/products", h.Product.Routes())
				page.Mount("/orders", h.Order.Routes())
				page.Mount("/uploads", h.Upload.Routes())
				page.Route("/settings", h.Account.SettingsRoutes)
				page.With(middleware.RequireRole(sec.RoleSuperAdmin)).Mount("/admins", h.Subscription.AdminRoutes())
			})
		})
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

// Handler exposes the router, mainly for tests.
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
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
