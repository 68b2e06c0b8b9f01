// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
)

/*
TestServer_Promotes401 verifies that a backend 401 becomes a session expiry.
*/
func TestServer_Promotes401(t *testing.T) {
	err := apperr.Server(http.StatusUnauthorized, "Token expired")

	assert.Equal(t, apperr.KindSessionExpired, err.Kind)
	assert.Equal(t, http.StatusUnauthorized, err.HTTPStatus)
	assert.Equal(t, "Token expired", err.Message)
	assert.True(t, apperr.IsSessionExpired(err))
}

/*
TestTaxonomy_StatusAndKind checks the status carried by each kind.
*/
func TestTaxonomy_StatusAndKind(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		kind   apperr.Kind
		status int
	}{
		{"server_404", apperr.Server(http.StatusNotFound, "Order not found"), apperr.KindServer, http.StatusNotFound},
		{"server_default_message", apperr.Server(http.StatusInternalServerError, ""), apperr.KindServer, http.StatusInternalServerError},
		{"network", apperr.Network(errors.New("dial tcp: refused")), apperr.KindNetwork, 0},
		{"client", apperr.Client(errors.New("json: unsupported type")), apperr.KindClient, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.Message)
		})
	}

	assert.Equal(t, "No response from server", apperr.Network(nil).Message)
}

/*
TestMessageOr prefers the server message and falls back otherwise.
*/
func TestMessageOr(t *testing.T) {
	wrapped := fmt.Errorf("list users: %w", apperr.Server(http.StatusBadRequest, "Bad page"))

	assert.Equal(t, "Bad page", apperr.MessageOr(wrapped, "Failed to fetch users"))
	assert.Equal(t, "boom", apperr.MessageOr(errors.New("boom"), "Failed"))
	assert.Equal(t, "Failed", apperr.MessageOr(nil, "Failed"))

	found := apperr.As(wrapped)
	require.NotNil(t, found)
	assert.False(t, apperr.IsNotFound(wrapped))
}

/*
TestRejected_KeepsCauseOutOfTheMessage checks that refused input shows the caller's message.
*/
func TestRejected_KeepsCauseOutOfTheMessage(t *testing.T) {
	cause := errors.New(`product: unknown status "archived"`)

	tests := []struct {
		name string
		err  *apperr.AppError
		want string
	}{
		{"fallback", apperr.Rejected("", cause), "Failed to update product status"},
		{"explicit", apperr.Rejected("Pick a listed status", cause), "Pick a listed status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, apperr.KindClient, apperr.KindOf(tt.err))
			assert.Equal(t, tt.want, apperr.MessageOr(tt.err, "Failed to update product status"))
			assert.ErrorIs(t, tt.err, cause)
		})
	}

	assert.Equal(t, cause.Error(), apperr.Rejected("", cause).Error())
}
