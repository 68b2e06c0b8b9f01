// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package storage provides the durable key-value storage that backs a dashboard session.

A browser profile keeps its login in durable storage that survives reloads. The
dashboard reproduces that with one [Storage] per session: the server gives each
browser an opaque cookie and scopes a shared driver to it with [Namespace],
while the console uses a single [File] store as its profile.

Drivers:

  - [Memory]: process-local map, used in development and tests.
  - [Redis]: shared across server replicas, sliding TTL.
  - [Postgres]: shared across server replicas, one row per key.
  - [File]: JSON document on disk, used by the console.
*/
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("storage: key not found")

// Storage is a string key-value store.
//
// # Semantics
//
// Implementations must be safe for concurrent use. Delete of a missing key
// is not an error.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

// # Namespacing

// namespaced prefixes every key before delegating to the shared driver.
type namespaced struct {
	base   Storage
	prefix string
}

// Namespace scopes base to the keys starting with prefix.
//
// Example:
//
//	browser := storage.Namespace(shared, "dashboard:session:"+sessionID+":")
func Namespace(base Storage, prefix string) Storage {
	return &namespaced{base: base, prefix: prefix}
}

func (store *namespaced) Get(ctx context.Context, key string) (string, error) {
	return store.base.Get(ctx, store.prefix+key)
}

func (store *namespaced) Set(ctx context.Context, key, value string) error {
	return store.base.Set(ctx, store.prefix+key, value)
}

func (store *namespaced) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = store.prefix + key
	}
	return store.base.Delete(ctx, prefixed...)
}

func (store *namespaced) Ping(ctx context.Context) error {
	return store.base.Ping(ctx)
}
