// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/sec"
)

func signedToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

/*
TestInspectToken_ReadsExpiry verifies that claims are read without the signing key.
*/
func TestInspectToken_ReadsExpiry(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.RegisteredClaims{
		Subject:   "64f0c0ffee",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	info, err := sec.InspectToken(token)
	require.NoError(t, err)

	assert.Equal(t, "64f0c0ffee", info.Subject)
	require.NotNil(t, info.ExpiresAt)
	assert.True(t, expiresAt.Equal(*info.ExpiresAt))
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(expiresAt.Add(time.Minute)))
}

/*
TestTokenExpiry_Errors covers malformed tokens and tokens without "exp".
*/
func TestTokenExpiry_Errors(t *testing.T) {
	_, err := sec.TokenExpiry("not-a-jwt")
	assert.Error(t, err)

	_, err = sec.TokenExpiry(signedToken(t, jwt.RegisteredClaims{Subject: "x"}))
	assert.ErrorIs(t, err, sec.ErrNoExpiry)
}

/*
TestUserRole_AtLeast verifies the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleSuperAdmin.AtLeast(sec.RoleAdmin))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.RoleAdmin.AtLeast(sec.RoleSuperAdmin))
	assert.False(t, sec.UserRole("customer").Valid())
	assert.True(t, sec.RoleUser.Valid())
}
