// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/guard"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/ctxutil"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/respond"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/storage"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/session"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/uuidv7"
)

// # Browser Session

// SessionOptions configures the browser session cookie.
type SessionOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

/*
Session binds every request to one browser's durable session.

Flow:
 1. Read the session cookie, issuing a new UUID v7 when absent or malformed.
 2. Scope the shared storage to "dashboard:session:<id>:".
 3. Build and bootstrap a [session.Store] over that scope.
 4. Restore the flash notifications left by the previous redirect.
 5. Inject the store and the notification sink into the context.
*/
func Session(shared storage.Storage, options SessionOptions, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			requestLogger := logger.With(slog.String("request_id", ctxutil.GetRequestID(ctx)))

			// 1. Identify the browser
			sessionID := readSessionID(request, options.CookieName)
			if sessionID == "" {
				sessionID = newID()
			}
			http.SetCookie(writer, &http.Cookie{
				Name:     options.CookieName,
				Value:    sessionID,
				Path:     constants.PathRoot,
				MaxAge:   int(options.TTL.Seconds()),
				HttpOnly: true,
				Secure:   options.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			// 2. Scope storage
			durable := storage.Namespace(shared, constants.StoragePrefixSession+sessionID+":")

			// 3. Bootstrap the session
			store := session.New(durable, requestLogger)
			store.Bootstrap(ctx)

			// 4. Flash notifications
			sink := notify.NewSink(durable)
			if err := sink.Restore(ctx); err != nil {
				requestLogger.WarnContext(ctx, "flash_restore_failed", slog.String("error", err.Error()))
			}

			// 5. Context injection
			ctx = ctxutil.WithSession(ctx, store)
			ctx = ctxutil.WithNotifier(ctx, sink)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// readSessionID returns the cookie value when it is a valid UUID.
func readSessionID(request *http.Request, name string) string {
	cookie, err := request.Cookie(name)
	if err != nil {
		return ""
	}
	if !uuidv7.Valid(cookie.Value) {
		return ""
	}
	return cookie.Value
}

// # Route Guards

/*
Guard gates a route group on the session state.

Description: One [guard.Guard] is evaluated per request, so at most one
redirect is issued for it. While the session is still bootstrapping the
response is an empty loading view.
*/
func Guard(kind guard.RouteKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			state := session.Bootstrapping
			if store := ctxutil.GetSession(request.Context()); store != nil {
				state = store.State()
			}

			decision := guard.New(kind).Evaluate(state)

			switch decision.Action {
			case guard.Allow:
				next.ServeHTTP(writer, request)
			case guard.Redirect:
				respond.Redirect(writer, request, decision.Target)
			default:
				respond.OK(writer, request, map[string]bool{"loading": true})
			}
		})
	}
}
