// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

// Package sec provides role hierarchy and access token inspection.
//
// # Architecture
//
// Tokens are issued and verified by the shop backend. The dashboard never holds
// the signing key, so it only reads claims for display (expiry, subject) and
// leaves every authorization decision to the backend.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when a token carries no "exp" claim.
var ErrNoExpiry = errors.New("sec: token has no expiry claim")

// TokenInfo is the subset of access token claims shown in the dashboard.
type TokenInfo struct {
	Subject   string     `json:"subject,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the token expiry lies before now.
func (info TokenInfo) Expired(now time.Time) bool {
	return info.ExpiresAt != nil && info.ExpiresAt.Before(now)
}

// InspectToken decodes the claims of a JWT WITHOUT verifying its signature.
//
// # Security
//
// The result must never be used to grant access. It only feeds display
// state such as "session expires at".
func InspectToken(tokenString string) (*TokenInfo, error) {
	claims := jwt.RegisteredClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return nil, fmt.Errorf("sec: malformed token: %w", err)
	}

	info := &TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		expiresAt := claims.ExpiresAt.Time
		info.ExpiresAt = &expiresAt
	}

	return info, nil
}

// TokenExpiry returns the "exp" claim of a JWT without verifying its signature.
func TokenExpiry(tokenString string) (time.Time, error) {
	info, err := InspectToken(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if info.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return *info.ExpiresAt, nil
}
