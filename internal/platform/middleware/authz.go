// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package middleware

import (
	"net/http"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	requestutil "github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/request"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/respond"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/sec"
)

// RequireRole blocks requests if the signed-in user doesn't have the required role.
//
// # Usage
//
// Must be registered AFTER [Session] and a [guard.Protected] [Guard]. The
// backend enforces the same rule; this only hides pages the user cannot use.
//
// # Flow
//  1. Check that the session has a principal (implies AuthN).
//  2. Check the principal's role meets or exceeds the target using [sec.UserRole.AtLeast].
//  3. If insufficient, abort with HTTP 403 Forbidden.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Authentication Check ───────────────────────────────────────
			principal, err := requestutil.RequiredPrincipal(request)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !principal.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
