// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/api"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/order"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/product"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/stats"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/subscription"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/upload"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/config"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient/httpclienttest"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/sec"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/storage"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/session"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/account"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/auth"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
)

const (
	cookieName = "fb_admin_sid"
	browserID  = "0190f5a6-3c1e-7a2b-9d4f-2b8c1e6a7d10"
)

// newServer wires every page against a fake backend and shared memory storage.
func newServer(t *testing.T, backend *httpclienttest.Backend, checks ...api.HealthCheck) (http.Handler, *storage.Memory) {
	t.Helper()

	cfg := &config.Config{
		ServerPort:               "0",
		Environment:              "test",
		BackendURL:               backend.URL(),
		BackendTimeout:           time.Second,
		StorageDriver:            config.StorageMemory,
		SessionCookieName:        cookieName,
		SessionTTL:               time.Hour,
		SubscriptionPollInterval: time.Minute,
	}
	log := httpclienttest.Logger()
	client := backend.Client()
	shared := storage.NewMemory()

	subscriptions := subscription.NewService(subscription.NewAPIRepository(client), log)
	liveness, readiness := api.NewHealthHandlers(checks, log)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx, cfg, log, shared, api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Home:         api.NewHomeHandler(stats.NewService(stats.NewAPIRepository(client), log), subscriptions),
		Auth:         auth.NewHandler(auth.NewService(auth.NewAPIRepository(client), log)),
		Account:      account.NewHandler(account.NewService(account.NewAPIRepository(client), log)),
		Product:      product.NewHandler(product.NewService(product.NewAPIRepository(client), log), backend.URL()),
		Order:        order.NewHandler(order.NewService(order.NewAPIRepository(client), log)),
		Subscription: subscription.NewHandler(subscriptions, time.Minute),
		Upload:       upload.NewHandler(upload.NewService(upload.NewAPIRepository(client), backend.URL(), log)),
	})
	return server.Handler(), shared
}

// signIn persists a principal for the browser sid.
func signIn(t *testing.T, shared storage.Storage, sid string, role sec.UserRole) {
	t.Helper()
	store := session.New(storage.Namespace(shared, constants.StoragePrefixSession+sid+":"), httpclienttest.Logger())
	require.NoError(t, store.Login(context.Background(), identity.User{ID: "u1", Name: "Ada", Role: role}, "tok-1", ""))
}

func get(handler http.Handler, path, sid string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	if sid != "" {
		request.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHealthEndpoints verifies liveness and readiness with a failing dependency.
*/
func TestHealthEndpoints(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected backend call %s %s", r.Method, r.URL.Path)
	})

	healthy, _ := newServer(t, backend, api.HealthCheck{Name: "memory", Check: func(context.Context) error { return nil }})
	degraded, _ := newServer(t, backend, api.HealthCheck{Name: "redis", Check: func(context.Context) error { return errors.New("dial tcp: refused") }})

	assert.Equal(t, http.StatusOK, get(healthy, "/health", "").Code)
	assert.Equal(t, http.StatusOK, get(healthy, "/ready", "").Code)

	recorder := get(degraded, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var body struct {
		Status string `json:"status"`
		Checks []struct {
			Name string `json:"name"`
			OK   bool   `json:"ok"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	require.Len(t, body.Checks, 1)
	assert.False(t, body.Checks[0].OK)

	// Health endpoints never start a browser session.
	assert.Empty(t, get(healthy, "/health", "").Result().Cookies())
}

/*
TestRouting_Guards checks where each route kind sends signed-out and signed-in browsers.
*/
func TestRouting_Guards(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Reply(w, http.StatusOK, "", map[string]any{
			"stats": map[string]int{"totalUsers": 3, "activeUsers": 2, "totalOrders": 5, "totalProducts": 7},
		})
	})
	handler, shared := newServer(t, backend)
	signIn(t, shared, browserID, sec.RoleAdmin)

	tests := []struct {
		name     string
		path     string
		sid      string
		status   int
		location string
	}{
		{"entry_signed_out", "/", "", http.StatusSeeOther, constants.PathLogin},
		{"entry_signed_in", "/", browserID, http.StatusSeeOther, constants.PathDashboard},
		{"dashboard_signed_out", "/dashboard", "", http.StatusSeeOther, constants.PathLogin},
		{"login_signed_in", "/login", browserID, http.StatusSeeOther, constants.PathDashboard},
		{"login_signed_out", "/login", "", http.StatusOK, ""},
		{"dashboard_signed_in", "/dashboard", browserID, http.StatusOK, ""},
		{"admins_requires_super_admin", "/dashboard/admins", browserID, http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := get(handler, tt.path, tt.sid)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, recorder.Header().Get("Location"))
			}
		})
	}
}

/*
TestHome_ComposesSections renders counters and hides a failed subscription section.
*/
func TestHome_ComposesSections(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/stats":
			httpclienttest.Reply(w, http.StatusOK, "", map[string]any{
				"stats": map[string]int{"totalUsers": 3, "activeUsers": 2, "totalOrders": 5, "totalProducts": 7},
			})
		default:
			httpclienttest.Fail(w, http.StatusInternalServerError, "boom")
		}
	})
	handler, shared := newServer(t, backend)
	signIn(t, shared, browserID, sec.RoleAdmin)

	recorder := get(handler, "/dashboard", browserID)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data struct {
			Principal    *identity.User       `json:"principal"`
			Stats        *stats.Stats         `json:"stats"`
			Subscription *subscription.Status `json:"subscription"`
			Band         subscription.Band    `json:"band"`
		} `json:"data"`
		Notifications []struct {
			Message string `json:"message"`
		} `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	require.NotNil(t, body.Data.Principal)
	assert.Equal(t, "Ada", body.Data.Principal.Name)
	require.NotNil(t, body.Data.Stats)
	assert.Equal(t, 7, body.Data.Stats.TotalProducts)
	assert.Nil(t, body.Data.Subscription)
	assert.Equal(t, subscription.BandHidden, body.Data.Band)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, "boom", body.Notifications[0].Message)
}
