// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package main

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/stats"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient/httpclienttest"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/sec"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
)

/*
TestRun_GuardsCommands checks that signed-out operators are sent to the login page.
*/
func TestRun_GuardsCommands(t *testing.T) {
	current := httpclienttest.NewSession(t)

	var out bytes.Buffer
	ui := newConsole(strings.NewReader("users\nfrobnicate\nstats\nquit\n"), &out, time.Millisecond)
	ui.store = current.Store

	require.NoError(t, ui.Run(current.Context))

	assert.Contains(t, out.String(), "go to "+constants.PathLogin)
	assert.Contains(t, out.String(), `unknown command "frobnicate"`)
}

/*
TestRun_SignedInCommands runs a protected command and rejects login while signed in.
*/
func TestRun_SignedInCommands(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Reply(w, http.StatusOK, "", map[string]any{
			"stats": map[string]int{"totalUsers": 4, "totalProducts": 9},
		})
	})
	current := httpclienttest.SignedIn(t, identity.User{ID: "u1", Name: "Ada", Role: sec.RoleAdmin}, "tok-1")

	var out bytes.Buffer
	ui := newConsole(strings.NewReader("stats\nlogin a@b.co secret1\n"), &out, time.Millisecond)
	ui.store = current.Store
	ui.stats = stats.NewService(stats.NewAPIRepository(backend.Client()), httpclienttest.Logger())

	require.NoError(t, ui.Run(current.Context))

	assert.Contains(t, out.String(), `"totalProducts": 9`)
	assert.Contains(t, out.String(), "go to "+constants.PathDashboard)
	assert.Equal(t, "/api/stats", backend.Last(t).Path)
}
