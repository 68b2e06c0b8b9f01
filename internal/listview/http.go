// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package listview

import (
	"net/http"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/respond"
)

/*
Serve renders one list page of the dashboard server.

Flow:
 1. Redirect (303) to the canonical query string when the URL is not canonical.
 2. Load the page synchronously through a [Controller].
 3. A session expiry redirects to the login page; any other failure renders
    an empty list without metadata, the error having been notified already.
*/
func Serve[T any](writer http.ResponseWriter, request *http.Request, fetch FetchFunc[T]) {
	query, canonical, changed := Canonicalize(request.URL.Query())
	if changed {
		respond.Redirect(writer, request, request.URL.Path+"?"+canonical.Encode())
		return
	}

	controller := New(fetch, query, Options[T]{})
	defer controller.Close()

	state := controller.Load(request.Context())
	if apperr.IsSessionExpired(state.Err) {
		respond.Error(writer, request, state.Err)
		return
	}

	respond.List(writer, request, state.Items, state.Meta, state.Query)
}
