// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

// Command dashboard is the entry point for the fb-admin dashboard server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the session storage driver (memory, file, redis or postgres).
//  4. Build the backend HTTP client.
//  5. Wire resource services and page handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/api"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/order"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/product"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/stats"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/subscription"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/upload"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/config"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/migration"
	pgstore "github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/postgres"
	redisstore "github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/redis"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/storage"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/account"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/auth"
)

// purgeInterval is how often expired postgres session rows are deleted.
const purgeInterval = 10 * time.Minute

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[fb-admin] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("backend", cfg.BackendURL),
		slog.String("storage", cfg.StorageDriver),
	)

	// Root context for background workers, cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Session Storage ────────────────────────────────────────────────
	sessions, checks, closeStorage := openStorage(rootCtx, cfg, log)
	defer closeStorage()

	// ── 4. Backend Client ─────────────────────────────────────────────────
	client := httpclient.New(cfg.BackendURL, cfg.BackendTimeout,
		httpclient.WithCredentials(httpclient.SessionCredentials),
		httpclient.WithLogger(log),
	)

	// ── 5. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(checks, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(auth.NewAPIRepository(client), log)
	accountService := account.NewService(account.NewAPIRepository(client), log)
	productService := product.NewService(product.NewAPIRepository(client), log)
	orderService := order.NewService(order.NewAPIRepository(client), log)
	statsService := stats.NewService(stats.NewAPIRepository(client), log)
	subscriptionService := subscription.NewService(subscription.NewAPIRepository(client), log)
	uploadService := upload.NewService(upload.NewAPIRepository(client), cfg.BackendURL, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Home:         api.NewHomeHandler(statsService, subscriptionService),
		Auth:         auth.NewHandler(authService),
		Account:      account.NewHandler(accountService),
		Product:      product.NewHandler(productService, cfg.BackendURL),
		Order:        order.NewHandler(orderService),
		Subscription: subscription.NewHandler(subscriptionService, cfg.SubscriptionPollInterval),
		Upload:       upload.NewHandler(uploadService),
	}

	server := api.NewServer(rootCtx, cfg, log, sessions, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Stop background workers (rate limiter cleanup, purge janitor).
	rootCancel()

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	raw := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	return raw.With(slog.String("app", constants.AppName))
}

/*
openStorage connects the configured session storage driver.

Returns:
  - storage.Storage: Shared store for all browser sessions
  - []api.HealthCheck: Readiness checks for the driver
  - func(): Releases connections on shutdown
*/
func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Storage, []api.HealthCheck, func()) {
	// Deadline so misconfiguration is caught quickly rather than hanging indefinitely.
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var (
		store storage.Storage
		release = func() {}
	)

	switch cfg.StorageDriver {
	case config.StorageRedis:
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		release = func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}
		store = storage.NewRedis(rdb, cfg.SessionTTL)

	case config.StoragePostgres:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		release = func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		kv := storage.NewPostgres(pool, cfg.SessionTTL)
		go purgeExpired(ctx, kv, log)
		store = kv

	case config.StorageFile:
		store = storage.NewFile(cfg.StorageFile)

	default:
		log.Warn("memory_storage_sessions_lost_on_restart")
		store = storage.NewMemory()
	}

	checks := []api.HealthCheck{{Name: cfg.StorageDriver, Check: store.Ping}}
	return store, checks, release
}

// purgeExpired removes expired session rows until ctx is cancelled.
func purgeExpired(ctx context.Context, store *storage.Postgres, log *slog.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := store.PurgeExpired(ctx)
			if err != nil {
				log.Error("session_purge_failed", slog.Any("error", err))
				continue
			}
			if removed > 0 {
				log.Info("session_purge_completed", slog.Int64("removed", removed))
			}
		}
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
