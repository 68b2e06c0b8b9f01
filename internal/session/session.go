// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package session owns the authenticated principal and its tokens.

A [Store] is the single source of truth for "is a user signed in" for one
browser profile. It is an explicit object with one owner, injected into the
consumers that need it (the auth guard, the HTTP client, the auth and account
services) rather than a process-wide global.

State machine:

	Bootstrapping ──Bootstrap──▶ Authenticated | Unauthenticated
	Authenticated ──Logout / Clear──▶ Unauthenticated
	Unauthenticated ──Login──▶ Authenticated
	Authenticated ──UpdateUser──▶ Authenticated

Persistence uses three durable keys: "@auth_user" (JSON principal),
"@auth_token" and "@auth_refresh_token". They are always purged together.
*/
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/sec"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/storage"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
)

// ErrNotAuthenticated is returned by operations that require a signed-in principal.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// authKeys are purged together on logout, on bootstrap failure and on any 401.
var authKeys = []string{
	constants.StorageKeyUser,
	constants.StorageKeyToken,
	constants.StorageKeyRefreshToken,
}

// # States

// State is the position of a [Store] in its lifecycle.
type State int

const (
	// Bootstrapping means durable storage has not been read yet.
	Bootstrapping State = iota
	// Authenticated means a principal is signed in.
	Authenticated
	// Unauthenticated means nobody is signed in.
	Unauthenticated
)

// String implements [fmt.Stringer].
func (state State) String() string {
	switch state {
	case Bootstrapping:
		return "bootstrapping"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("State(%d)", int(state))
	}
}

// Snapshot is a read-only copy of the session for rendering.
//
// IsAuthenticated is always derived from Principal != nil.
type Snapshot struct {
	Principal       *identity.User `json:"user"`
	IsLoading       bool           `json:"isLoading"`
	IsAuthenticated bool           `json:"isAuthenticated"`

	// TokenExpiresAt is read from the access token without verification. Display only.
	TokenExpiresAt *time.Time `json:"tokenExpiresAt,omitempty"`
}

// # Store

// Store holds one browser profile's session.
//
// # Concurrency
//
// All methods are safe for concurrent use. Bootstrap runs its body at most once.
type Store struct {
	storage storage.Storage
	logger  *slog.Logger

	bootstrap sync.Once

	mu          sync.RWMutex
	state       State
	principal   *identity.User
	tokenExpiry *time.Time
}

// New creates a Store in the [Bootstrapping] state: {nil, loading, not authenticated}.
func New(durable storage.Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage: durable,
		logger:  logger,
		state:   Bootstrapping,
	}
}

/*
Bootstrap reads the persisted principal and access token.

Description: Both present and decodable → [Authenticated]. Anything else,
including storage errors and corrupt JSON, purges every auth key and lands in
[Unauthenticated]. It never returns an error and never calls the backend.
Only the first call does any work; later calls return immediately.
*/
func (store *Store) Bootstrap(ctx context.Context) {
	store.bootstrap.Do(func() {
		principal, token, err := store.readPersisted(ctx)
		if err != nil {
			store.logger.WarnContext(ctx, "session_bootstrap_failed", slog.Any("error", err))
			store.purge(ctx)
			store.transition(Unauthenticated, nil, nil)
			return
		}

		if principal == nil {
			store.purge(ctx)
			store.transition(Unauthenticated, nil, nil)
			return
		}

		store.transition(Authenticated, principal, tokenExpiry(token))
	})
}

/*
Login signs a principal in.

Description: The principal is always persisted. Tokens are persisted only when
non-empty, since the backend may deliver them through another channel.

Returns:
  - error: Storage failures; the state is unchanged in that case
*/
func (store *Store) Login(ctx context.Context, principal identity.User, accessToken, refreshToken string) error {
	encoded, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("session: encode principal: %w", err)
	}

	if err := store.storage.Set(ctx, constants.StorageKeyUser, string(encoded)); err != nil {
		return fmt.Errorf("session: persist principal: %w", err)
	}

	if accessToken != "" {
		if err := store.storage.Set(ctx, constants.StorageKeyToken, accessToken); err != nil {
			return fmt.Errorf("session: persist access token: %w", err)
		}
	}

	if refreshToken != "" {
		if err := store.storage.Set(ctx, constants.StorageKeyRefreshToken, refreshToken); err != nil {
			return fmt.Errorf("session: persist refresh token: %w", err)
		}
	}

	// A login settles the session even if Bootstrap never ran.
	store.bootstrap.Do(func() {})

	expiry := tokenExpiry(accessToken)
	if expiry == nil {
		expiry = store.currentTokenExpiry()
	}

	store.transition(Authenticated, &principal, expiry)
	store.logger.InfoContext(ctx, "session_login", slog.String("user_id", principal.ID))
	return nil
}

/*
Logout purges every auth key and signs the principal out.

Description: Local teardown only. The backend is not contacted.
*/
func (store *Store) Logout(ctx context.Context) error {
	store.bootstrap.Do(func() {})

	if err := store.storage.Delete(ctx, authKeys...); err != nil {
		return fmt.Errorf("session: purge: %w", err)
	}

	store.transition(Unauthenticated, nil, nil)
	return nil
}

/*
UpdateUser replaces the principal after a profile-affecting operation.

Returns:
  - error: ErrNotAuthenticated when nobody is signed in, or storage failures
*/
func (store *Store) UpdateUser(ctx context.Context, principal identity.User) error {
	store.mu.RLock()
	state := store.state
	store.mu.RUnlock()

	if state != Authenticated {
		return ErrNotAuthenticated
	}

	encoded, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("session: encode principal: %w", err)
	}

	if err := store.storage.Set(ctx, constants.StorageKeyUser, string(encoded)); err != nil {
		return fmt.Errorf("session: persist principal: %w", err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.state == Authenticated {
		store.principal = &principal
	}
	return nil
}

// # HTTP client credentials

// AccessToken returns the persisted bearer token, or "" when none is stored.
func (store *Store) AccessToken(ctx context.Context) (string, error) {
	token, err := store.storage.Get(ctx, constants.StorageKeyToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("session: read access token: %w", err)
	}
	return token, nil
}

// Clear reacts to a backend 401: every auth key is purged and the session
// becomes [Unauthenticated], so the next guarded route redirects to login.
func (store *Store) Clear(ctx context.Context) error {
	store.bootstrap.Do(func() {})

	err := store.storage.Delete(ctx, authKeys...)
	store.transition(Unauthenticated, nil, nil)

	if err != nil {
		return fmt.Errorf("session: purge: %w", err)
	}
	return nil
}

// # Readers

// State returns the current lifecycle state.
func (store *Store) State() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

// Principal returns a copy of the signed-in principal, or nil.
func (store *Store) Principal() *identity.User {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if store.principal == nil {
		return nil
	}
	principal := *store.principal
	return &principal
}

// Snapshot returns a consistent copy of the session.
func (store *Store) Snapshot() Snapshot {
	store.mu.RLock()
	defer store.mu.RUnlock()

	snapshot := Snapshot{
		IsLoading:      store.state == Bootstrapping,
		TokenExpiresAt: store.tokenExpiry,
	}
	if store.principal != nil {
		principal := *store.principal
		snapshot.Principal = &principal
		snapshot.IsAuthenticated = true
	}
	return snapshot
}

// # Internals

// readPersisted returns (nil, "", nil) when either key is absent.
func (store *Store) readPersisted(ctx context.Context) (*identity.User, string, error) {
	rawUser, err := store.storage.Get(ctx, constants.StorageKeyUser)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("read principal: %w", err)
	}

	token, err := store.storage.Get(ctx, constants.StorageKeyToken)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("read access token: %w", err)
	}

	if rawUser == "" || token == "" {
		return nil, "", nil
	}

	var principal identity.User
	if err := json.Unmarshal([]byte(rawUser), &principal); err != nil {
		return nil, "", fmt.Errorf("decode principal: %w", err)
	}

	return &principal, token, nil
}

// purge deletes every auth key, logging instead of failing.
func (store *Store) purge(ctx context.Context) {
	if err := store.storage.Delete(ctx, authKeys...); err != nil {
		store.logger.WarnContext(ctx, "session_purge_failed", slog.Any("error", err))
	}
}

func (store *Store) transition(state State, principal *identity.User, expiry *time.Time) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.state = state
	store.principal = principal
	store.tokenExpiry = expiry
}

func (store *Store) currentTokenExpiry() *time.Time {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.tokenExpiry
}

// tokenExpiry reads the JWT expiry for display; opaque tokens have none.
func tokenExpiry(token string) *time.Time {
	if token == "" {
		return nil
	}
	expiry, err := sec.TokenExpiry(token)
	if err != nil {
		return nil
	}
	return &expiry
}
