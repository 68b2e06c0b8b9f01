// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package subscription_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/subscription"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient/httpclienttest"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/sec"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
)

func newService(backend *httpclienttest.Backend) *subscription.Service {
	return subscription.NewService(subscription.NewAPIRepository(backend.Client()), httpclienttest.Logger())
}

func signedIn(t *testing.T) *httpclienttest.Session {
	return httpclienttest.SignedIn(t, identity.User{ID: "root", Name: "Root", Role: sec.RoleSuperAdmin}, "tok-1")
}

func intPtr(v int) *int { return &v }

/*
TestBandOf covers every display band and its thresholds.
*/
func TestBandOf(t *testing.T) {
	tests := []struct {
		name      string
		hasExpiry bool
		expired   bool
		days      int
		want      subscription.Band
	}{
		{"no_expiry", false, false, 30, subscription.BandHidden},
		{"expired", true, true, 0, subscription.BandExpired},
		{"healthy", true, false, 8, subscription.BandHealthy},
		{"warning_upper", true, false, 7, subscription.BandWarning},
		{"warning_lower", true, false, 4, subscription.BandWarning},
		{"critical", true, false, 3, subscription.BandCritical},
		{"critical_unknown_days", true, false, 0, subscription.BandCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subscription.BandOf(tt.hasExpiry, tt.expired, tt.days))
		})
	}

	status := subscription.Status{HasExpiry: true, DaysRemaining: intPtr(1)}
	assert.Equal(t, "1 day", status.Remaining())
	assert.Equal(t, subscription.BandHidden, subscription.Admin{DaysRemaining: intPtr(2)}.Band())
}

/*
TestExpiry covers parsing, removal and extension.
*/
func TestExpiry(t *testing.T) {
	expiry, err := subscription.ParseExpiry("2026-11-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-11-01", expiry.String())

	removed, err := subscription.ParseExpiry("  ")
	require.NoError(t, err)
	assert.Nil(t, removed.Date())

	encoded, err := json.Marshal(map[string]subscription.Expiry{"expiryDate": removed})
	require.NoError(t, err)
	assert.JSONEq(t, `{"expiryDate": null}`, string(encoded))

	_, err = subscription.ParseExpiry("01/11/2026")
	assert.Error(t, err)

	now := time.Date(2026, 10, 15, 13, 0, 0, 0, time.UTC)
	current := time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2027-01-06", subscription.Extend(&current, 7, now).String())
	assert.Equal(t, "2026-10-22", subscription.Extend(nil, 7, now).String())
}

/*
TestUpdateExpiry sends the date, or null to remove it.
*/
func TestUpdateExpiry(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Reply(w, http.StatusOK, "", nil)
	})
	current := signedIn(t)
	service := newService(backend)

	expiry, err := subscription.ParseExpiry("2026-11-01")
	require.NoError(t, err)
	require.NoError(t, service.UpdateExpiry(current.Context, "a1", expiry))

	request := backend.Last(t)
	assert.Equal(t, http.MethodPut, request.Method)
	assert.Equal(t, "/api/subscription/admin/a1", request.Path)
	assert.JSONEq(t, `{"expiryDate": "2026-11-01"}`, string(request.Body))

	require.NoError(t, service.UpdateExpiry(current.Context, "a1", subscription.NoExpiry()))
	assert.JSONEq(t, `{"expiryDate": null}`, string(backend.Last(t).Body))

	assert.Equal(t, []notify.Notification{
		{Level: notify.LevelSuccess, Message: "Subscription updated successfully"},
		{Level: notify.LevelSuccess, Message: "Subscription updated successfully"},
	}, current.Sink.Drain())
}

/*
TestAdmins decodes the privileged admin list.
*/
func TestAdmins(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Reply(w, http.StatusOK, "", map[string]any{"admins": []map[string]any{
			{"_id": "a1", "name": "Ann", "subscriptionExpiryDate": "2026-11-01T00:00:00.000Z", "isExpired": false, "daysRemaining": 17},
			{"_id": "a2", "name": "Bob", "subscriptionExpiryDate": nil, "isExpired": false, "daysRemaining": nil},
		}})
	})
	current := signedIn(t)

	admins, err := newService(backend).Admins(current.Context)
	require.NoError(t, err)
	require.Len(t, admins, 2)

	assert.Equal(t, "/api/subscription/admins", backend.Last(t).Path)
	assert.Equal(t, subscription.BandHealthy, admins[0].Band())
	assert.Equal(t, subscription.BandHidden, admins[1].Band())
}

/*
TestPoller_RefreshesUntilCancelled polls on the interval and stops with the context.
*/
func TestPoller_RefreshesUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		httpclienttest.Reply(w, http.StatusOK, "", map[string]any{"hasExpiry": true, "daysRemaining": 5})
	})
	current := signedIn(t)
	poller := subscription.NewPoller(newService(backend), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(current.Context)
	done := make(chan struct{})
	var emitted atomic.Int32

	go func() {
		defer close(done)
		poller.Run(ctx, func(status *subscription.Status, err error) bool {
			assert.NoError(t, err)
			assert.Equal(t, subscription.BandWarning, status.Band())
			if emitted.Add(1) == 3 {
				cancel()
			}
			return true
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancellation")
	}

	assert.Equal(t, int32(3), emitted.Load())
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

/*
TestPoller_StopsWhenEmitDeclines ends the loop on the first false.
*/
func TestPoller_StopsWhenEmitDeclines(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Fail(w, http.StatusInternalServerError, "down")
	})
	current := signedIn(t)
	poller := subscription.NewPoller(newService(backend), time.Hour)

	var errs []error
	poller.Run(current.Context, func(status *subscription.Status, err error) bool {
		errs = append(errs, err)
		return false
	})

	require.Len(t, errs, 1)
	assert.Error(t, errs[0])
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "down"}}, current.Sink.Drain())
}
