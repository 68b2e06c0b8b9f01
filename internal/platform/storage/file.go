// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File implements [Storage] as one JSON object on disk.
//
// # Durability
//
// Every write rewrites the whole document through a temporary file and an
// atomic rename, so a crash never leaves a truncated profile behind.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a file-backed store. The file is created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

// Get returns the value for key or [ErrNotFound].
func (store *File) Get(_ context.Context, key string) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.load()
	if err != nil {
		return "", err
	}

	value, found := values[key]
	if !found {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores value under key.
func (store *File) Set(_ context.Context, key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.load()
	if err != nil {
		return err
	}

	values[key] = value
	return store.save(values)
}

// Delete removes keys.
func (store *File) Delete(_ context.Context, keys ...string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.load()
	if err != nil {
		return err
	}

	for _, key := range keys {
		delete(values, key)
	}
	return store.save(values)
}

// Ping verifies that the containing directory can be created.
func (store *File) Ping(context.Context) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("file_storage_unavailable: %w", err)
	}
	return nil
}

// load reads the document. A missing file is an empty store.
func (store *File) load() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("file_storage_read_failed: %w", err)
	}

	if len(data) == 0 {
		return values, nil
	}

	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("file_storage_corrupted: %w", err)
	}
	return values, nil
}

// save writes the document atomically.
func (store *File) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("file_storage_mkdir_failed: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("file_storage_encode_failed: %w", err)
	}

	temp, err := os.CreateTemp(filepath.Dir(store.path), ".session-*.json")
	if err != nil {
		return fmt.Errorf("file_storage_write_failed: %w", err)
	}
	defer os.Remove(temp.Name())

	if _, err := temp.Write(data); err != nil {
		temp.Close()
		return fmt.Errorf("file_storage_write_failed: %w", err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("file_storage_write_failed: %w", err)
	}

	if err := os.Rename(temp.Name(), store.path); err != nil {
		return fmt.Errorf("file_storage_rename_failed: %w", err)
	}
	return nil
}
