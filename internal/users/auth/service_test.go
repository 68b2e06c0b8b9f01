// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient/httpclienttest"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/sec"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/session"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/auth"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
)

func newService(backend *httpclienttest.Backend) *auth.Service {
	return auth.NewService(auth.NewAPIRepository(backend.Client()), httpclienttest.Logger())
}

/*
TestLogin_Success persists the principal and tokens and reports the server message.
*/
func TestLogin_Success(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Reply(w, http.StatusOK, "Welcome back", map[string]any{
			"user":         map[string]any{"_id": "u1", "name": "Ada", "email": "ada@shop.test", "role": "admin"},
			"accessToken":  "access-1",
			"refreshToken": "refresh-1",
		})
	})
	current := httpclienttest.NewSession(t)

	user, err := newService(backend).Login(current.Context, auth.LoginForm{Email: "ada@shop.test", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, session.Authenticated, current.Store.State())
	assert.Equal(t, sec.RoleAdmin, current.Store.Principal().Role)

	token, err := current.Storage.Get(current.Context, constants.StorageKeyToken)
	require.NoError(t, err)
	assert.Equal(t, "access-1", token)

	refresh, err := current.Storage.Get(current.Context, constants.StorageKeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", refresh)

	request := backend.Last(t)
	assert.Equal(t, "/api/auth/login", request.Path)
	assert.Empty(t, request.Auth)

	var body auth.LoginForm
	request.JSON(t, &body)
	assert.Equal(t, auth.LoginForm{Email: "ada@shop.test", Password: "secret1"}, body)

	assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: "Welcome back"}}, current.Sink.Drain())
}

/*
TestLogin_Rejected reports the server message, stays signed out and rethrows.
*/
func TestLogin_Rejected(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Fail(w, http.StatusUnauthorized, "Invalid credentials")
	})
	current := httpclienttest.NewSession(t)

	user, err := newService(backend).Login(current.Context, auth.LoginForm{Email: "ada@shop.test", Password: "wrong12"})

	assert.Nil(t, user)
	assert.True(t, apperr.IsSessionExpired(err))
	assert.Equal(t, session.Unauthenticated, current.Store.State())
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "Invalid credentials"}}, current.Sink.Drain())
}

/*
TestLogin_DefaultMessages falls back when the backend sends no message.
*/
func TestLogin_DefaultMessages(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Reply(w, http.StatusOK, "", map[string]any{
			"user":        map[string]any{"_id": "u1", "name": "Ada", "role": "superAdmin"},
			"accessToken": "access-1",
		})
	})
	current := httpclienttest.NewSession(t)

	_, err := newService(backend).Login(current.Context, auth.LoginForm{Email: "ada@shop.test", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: "Login successful"}}, current.Sink.Drain())
}

/*
TestLogin_InvalidFormNeverCallsBackend validates locally first.
*/
func TestLogin_InvalidFormNeverCallsBackend(t *testing.T) {
	tests := []struct {
		name  string
		form  auth.LoginForm
		field string
	}{
		{"bad_email", auth.LoginForm{Email: "not-an-email", Password: "secret1"}, auth.FieldEmail},
		{"short_password", auth.LoginForm{Email: "ada@shop.test", Password: "12345"}, auth.FieldPassword},
		{"long_password", auth.LoginForm{Email: "ada@shop.test", Password: "123456789012345678901"}, auth.FieldPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
				t.Error("backend must not be called")
			})
			current := httpclienttest.NewSession(t)

			_, err := newService(backend).Login(current.Context, tt.form)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
			assert.Empty(t, backend.Requests())
		})
	}
}

/*
TestLogout purges the session without contacting the backend.
*/
func TestLogout(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called")
	})
	current := httpclienttest.SignedIn(t, identity.User{ID: "u1", Name: "Ada"}, "token")

	require.NoError(t, newService(backend).Logout(current.Context))

	assert.Equal(t, session.Unauthenticated, current.Store.State())
	assert.Nil(t, current.Store.Principal())
}

/*
TestMe refreshes the session principal with the bearer token attached.
*/
func TestMe(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Reply(w, http.StatusOK, "", map[string]any{
			"user": map[string]any{"_id": "u1", "name": "Ada Lovelace", "currency": "JOD"},
		})
	})
	current := httpclienttest.SignedIn(t, identity.User{ID: "u1", Name: "Ada"}, "token-1")

	user, err := newService(backend).Me(current.Context)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, "Ada Lovelace", current.Store.Principal().Name)
	assert.Equal(t, "Bearer token-1", backend.Last(t).Auth)
}

/*
TestMe_Failure reports the default message and rethrows.
*/
func TestMe_Failure(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	current := httpclienttest.SignedIn(t, identity.User{ID: "u1"}, "token-1")

	_, err := newService(backend).Me(current.Context)
	require.Error(t, err)

	notifications := current.Sink.Drain()
	require.Len(t, notifications, 1)
	assert.Equal(t, notify.LevelError, notifications[0].Level)
}

/*
TestPasswordRecovery covers both recovery steps and the reset form rules.
*/
func TestPasswordRecovery(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Reply(w, http.StatusOK, "", nil)
	})
	current := httpclienttest.NewSession(t)
	service := newService(backend)

	require.NoError(t, service.ForgotPassword(current.Context, auth.ForgotPasswordForm{Email: "ada@shop.test"}))
	assert.Equal(t, "/api/auth/forgot-password", backend.Last(t).Path)

	form := auth.ResetPasswordForm{Email: "ada@shop.test", OTP: "1234", Password: "secret1", ConfirmPassword: "secret1"}
	require.NoError(t, service.ResetPassword(current.Context, form))

	var body map[string]string
	backend.Last(t).JSON(t, &body)
	assert.Equal(t, "secret1", body["confirmPassword"])
	assert.Equal(t, "1234", body["otp"])

	assert.Len(t, current.Sink.Drain(), 2)

	mismatch := form
	mismatch.ConfirmPassword = "secret2"
	err := service.ResetPassword(current.Context, mismatch)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, auth.FieldConfirmPassword, appErr.Details[0].Field)
	assert.Equal(t, "Passwords do not match", appErr.Details[0].Message)

	shortOTP := form
	shortOTP.OTP = "12"
	assert.Error(t, service.ResetPassword(current.Context, shortOTP))
	assert.Len(t, backend.Requests(), 2)
}
