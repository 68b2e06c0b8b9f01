// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package account_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/listview"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient/httpclienttest"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/money"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/sec"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/account"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
)

func newService(backend *httpclienttest.Backend) *account.Service {
	return account.NewService(account.NewAPIRepository(backend.Client()), httpclienttest.Logger())
}

func signedIn(t *testing.T) *httpclienttest.Session {
	return httpclienttest.SignedIn(t, identity.User{ID: "admin-1", Name: "Root", Role: sec.RoleAdmin}, "tok-1")
}

/*
TestList_SendsQueryAndFilter checks the backend query string and decoding.
*/
func TestList_SendsQueryAndFilter(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Reply(w, http.StatusOK, "", map[string]any{
			"users": []map[string]any{{"_id": "u1", "name": "Ada", "status": "active"}},
			"meta":  map[string]any{"page": 2, "rowsPerPage": 25, "total": 26, "totalPages": 2},
		})
	})
	current := signedIn(t)

	query := listview.Query{Page: 2, RowsPerPage: 25, Search: "  "}
	result, err := newService(backend).List(current.Context, query, account.Filter{Status: identity.StatusActive})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "Ada", result.Items[0].Name)
	require.NotNil(t, result.Meta)
	assert.Equal(t, 26, result.Meta.Total)

	request := backend.Last(t)
	assert.Equal(t, http.MethodGet, request.Method)
	assert.Equal(t, "/api/users", request.Path)
	assert.Equal(t, "2", request.Query.Get("page"))
	assert.Equal(t, "25", request.Query.Get("rowsPerPage"))
	assert.Equal(t, "active", request.Query.Get("status"))
	assert.False(t, request.Query.Has("search"))
	assert.Equal(t, "Bearer tok-1", request.Auth)
}

/*
TestList_FailureNotifies reports the default message when the backend sends none.
*/
func TestList_FailureNotifies(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	current := signedIn(t)

	_, err := newService(backend).List(current.Context, listview.DefaultQuery(), account.Filter{})
	require.Error(t, err)

	notes := current.Sink.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.LevelError, notes[0].Level)
}

/*
TestCreate_ValidationBlocksRequest never reaches the backend with an invalid form.
*/
func TestCreate_ValidationBlocksRequest(t *testing.T) {
	tests := []struct {
		name string
		form account.CreateForm
	}{
		{"missing_name", account.CreateForm{Email: "a@shop.test"}},
		{"bad_email", account.CreateForm{Name: "Ada", Email: "nope"}},
		{"short_password", account.CreateForm{Name: "Ada", Email: "a@shop.test", Password: "abc", ConfirmPassword: "abc"}},
		{"mismatch", account.CreateForm{Name: "Ada", Email: "a@shop.test", Password: "secret1", ConfirmPassword: "secret2"}},
		{"unknown_role", account.CreateForm{Name: "Ada", Email: "a@shop.test", Role: "owner"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
				t.Error("backend must not be called")
			})
			current := signedIn(t)

			_, err := newService(backend).Create(current.Context, tt.form)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
			assert.Empty(t, backend.Requests())
		})
	}
}

/*
TestCreate_Success posts the form and reports the server message.
*/
func TestCreate_Success(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Reply(w, http.StatusCreated, "", map[string]any{
			"user": map[string]any{"_id": "u9", "name": "Ada", "email": "a@shop.test"},
		})
	})
	current := signedIn(t)

	user, err := newService(backend).Create(current.Context, account.CreateForm{Name: "Ada", Email: "a@shop.test"})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u9", user.ID)

	request := backend.Last(t)
	assert.Equal(t, http.MethodPost, request.Method)
	assert.Equal(t, "/api/users", request.Path)

	var body map[string]any
	request.JSON(t, &body)
	assert.Equal(t, map[string]any{"name": "Ada", "email": "a@shop.test"}, body)

	assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: "User created successfully"}}, current.Sink.Drain())
}

/*
TestUpdate_EmptyFormIsNoop sends nothing when no field changed.
*/
func TestUpdate_EmptyFormIsNoop(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called")
	})
	current := signedIn(t)

	user, err := newService(backend).Update(current.Context, "u1", account.UpdateForm{})

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.Empty(t, current.Sink.Drain())
}

/*
TestSetOrderVisibility patches the permission flag only.
*/
func TestSetOrderVisibility(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Reply(w, http.StatusOK, "", nil)
	})
	current := signedIn(t)

	_, err := newService(backend).SetOrderVisibility(current.Context, "u1", true)
	require.NoError(t, err)

	request := backend.Last(t)
	assert.Equal(t, http.MethodPatch, request.Method)
	assert.Equal(t, "/api/users/u1", request.Path)

	var body map[string]any
	request.JSON(t, &body)
	assert.Equal(t, map[string]any{"canSeeAllOrders": true}, body)

	assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: "Permission updated successfully"}}, current.Sink.Drain())
}

/*
TestUpdateStatus_RejectsUnknown fails locally for statuses outside the closed set.
*/
func TestUpdateStatus_RejectsUnknown(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Reply(w, http.StatusOK, "Status changed", nil)
	})
	current := signedIn(t)
	service := newService(backend)

	_, err := service.UpdateStatus(current.Context, "u1", "archived")
	assert.Equal(t, apperr.KindClient, apperr.KindOf(err))
	assert.Empty(t, backend.Requests())
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "Failed to update user status"}}, current.Sink.Drain())

	_, err = service.UpdateStatus(current.Context, "u1", identity.StatusBlocked)
	require.NoError(t, err)
	assert.Equal(t, "/api/users/u1/status", backend.Last(t).Path)
	assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: "Status changed"}}, current.Sink.Drain())
}

/*
TestDelete_Failure reports the server message and rethrows.
*/
func TestDelete_Failure(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Fail(w, http.StatusForbidden, "Cannot delete yourself")
	})
	current := signedIn(t)

	err := newService(backend).Delete(current.Context, "admin-1")

	assert.Equal(t, apperr.KindServer, apperr.KindOf(err))
	assert.Equal(t, http.MethodDelete, backend.Last(t).Method)
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "Cannot delete yourself"}}, current.Sink.Drain())
}

/*
TestUpdateCurrency keeps the principal's identity whatever shape the reply takes.
*/
func TestUpdateCurrency(t *testing.T) {
	tests := []struct {
		name  string
		reply any
	}{
		{"bare_user", map[string]any{"_id": "admin-1", "name": "Root", "role": "admin", "currency": "JOD"}},
		{"partial_user", map[string]any{"currency": "JOD"}},
		{"wrapped_user", map[string]any{"user": map[string]any{"_id": "admin-1", "name": "Root", "role": "admin", "currency": "JOD"}}},
		{"wrapped_partial_user", map[string]any{"user": map[string]any{"currency": "JOD"}}},
		{"foreign_user", map[string]any{"_id": "other", "name": "Someone", "role": "user", "currency": "JOD"}},
		{"no_data", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
				httpclienttest.Reply(w, http.StatusOK, "ok", tt.reply)
			})
			current := signedIn(t)

			user, err := newService(backend).UpdateCurrency(current.Context, money.JOD)
			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, money.JOD, user.Currency)

			principal := current.Store.Principal()
			require.NotNil(t, principal)
			assert.Equal(t, "admin-1", principal.ID)
			assert.Equal(t, "Root", principal.Name)
			assert.Equal(t, sec.RoleAdmin, principal.Role)
			assert.Equal(t, money.JOD, principal.Currency)

			assert.Equal(t, "/api/users/currency", backend.Last(t).Path)
			assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: "Currency updated successfully"}}, current.Sink.Drain())
		})
	}
}

/*
TestUpdateCurrency_RejectsUnknown shows the fallback message and sends nothing.
*/
func TestUpdateCurrency_RejectsUnknown(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called")
	})
	current := signedIn(t)

	_, err := newService(backend).UpdateCurrency(current.Context, "EUR")

	assert.Equal(t, apperr.KindClient, apperr.KindOf(err))
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "Failed to update currency"}}, current.Sink.Drain())
	assert.NotEqual(t, money.Currency("EUR"), current.Store.Principal().Currency)
}
