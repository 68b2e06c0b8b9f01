// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package storage

import (
	"context"
	"sync"
)

// Memory is an in-process [Storage]. Its contents are lost on restart.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value for key or [ErrNotFound].
func (store *Memory) Get(_ context.Context, key string) (string, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	value, found := store.values[key]
	if !found {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores value under key.
func (store *Memory) Set(_ context.Context, key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.values[key] = value
	return nil
}

// Delete removes keys.
func (store *Memory) Delete(_ context.Context, keys ...string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, key := range keys {
		delete(store.values, key)
	}
	return nil
}

// Ping always succeeds.
func (store *Memory) Ping(context.Context) error { return nil }

// Len returns the number of stored keys.
func (store *Memory) Len() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.values)
}
