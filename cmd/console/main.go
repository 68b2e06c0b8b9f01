// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

// Command console is a single-operator terminal for the shop backend.
//
// It keeps its session in a local file, the way one browser profile keeps
// it in local storage, and drives the same session store, backend client,
// list view controller and route guard as the dashboard server.
//
// # Startup Sequence
//
//  1. Initialize structured logger (stderr, warnings only).
//  2. Load configuration from environment variables.
//  3. Restore the persisted session from STORAGE_FILE.
//  4. Read commands from stdin until EOF or "quit".
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/order"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/product"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/stats"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/subscription"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/config"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/ctxutil"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/storage"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/session"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/account"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/auth"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})).
		With(slog.String("app", constants.AppName))

	cfg, err := config.Load()
	if err != nil {
		log.Error("startup_failure", slog.String("context", "load configuration"), slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.Debug {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})).
			With(slog.String("app", constants.AppName))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One profile, one session.
	store := session.New(storage.NewFile(cfg.StorageFile), log)
	store.Bootstrap(ctx)

	ui := newConsole(os.Stdin, os.Stdout, cfg.SearchDebounce)

	ctx = ctxutil.WithLogger(ctx, log)
	ctx = ctxutil.WithSession(ctx, store)
	ctx = ctxutil.WithNotifier(ctx, notify.NewWriter(ui))

	client := httpclient.New(cfg.BackendURL, cfg.BackendTimeout,
		httpclient.WithCredentials(httpclient.SessionCredentials),
		httpclient.WithLogger(log),
		httpclient.WithSessionExpiredHook(func(context.Context) {
			ui.printf("session expired, sign in again with: login <email> <password>\n")
		}),
	)

	ui.store = store
	ui.auth = auth.NewService(auth.NewAPIRepository(client), log)
	ui.accounts = account.NewService(account.NewAPIRepository(client), log)
	ui.products = product.NewService(product.NewAPIRepository(client), log)
	ui.orders = order.NewService(order.NewAPIRepository(client), log)
	ui.stats = stats.NewService(stats.NewAPIRepository(client), log)
	ui.subscriptions = subscription.NewService(subscription.NewAPIRepository(client), log)

	if err := ui.Run(ctx); err != nil {
		log.Error("console_failed", slog.Any("error", err))
		os.Exit(1)
	}
}
