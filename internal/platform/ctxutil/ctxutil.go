// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/ctxkey"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/session"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Session

// WithSession returns a new context carrying the browser's session store.
func WithSession(ctx context.Context, store *session.Store) context.Context {
	return context.WithValue(ctx, ctxkey.KeySession, store)
}

// GetSession retrieves the [*session.Store] from the context, or nil.
func GetSession(ctx context.Context) *session.Store {
	store, ok := ctx.Value(ctxkey.KeySession).(*session.Store)
	if !ok {
		return nil
	}
	return store
}

// # Notifications

// WithNotifier returns a new context routing notifications to notifier.
func WithNotifier(ctx context.Context, notifier notify.Notifier) context.Context {
	return context.WithValue(ctx, ctxkey.KeyNotifications, notifier)
}

// GetNotifier retrieves the notifier from the context.
// If none is set, notifications are discarded.
func GetNotifier(ctx context.Context) notify.Notifier {
	notifier, ok := ctx.Value(ctxkey.KeyNotifications).(notify.Notifier)
	if !ok || notifier == nil {
		return notify.Discard
	}
	return notifier
}

// GetSink returns the per-request [*notify.Sink], or nil when the context
// routes notifications elsewhere.
func GetSink(ctx context.Context) *notify.Sink {
	sink, _ := ctx.Value(ctxkey.KeyNotifications).(*notify.Sink)
	return sink
}
