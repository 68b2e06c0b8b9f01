// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	platformredis "github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/redis"
)

// Redis implements [Storage] on a shared Redis instance.
//
// # Expiry
//
// Every read and write slides the key's expiry forward by ttl, so an active
// session never expires while an abandoned one is reclaimed. A zero ttl keeps
// keys forever.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed store.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

/*
Get retrieves the value stored under key.

Returns:
  - string: Stored value
  - error: ErrNotFound or connectivity errors
*/
func (store *Redis) Get(ctx context.Context, key string) (string, error) {
	var (
		value string
		err   error
	)

	if store.ttl > 0 {
		value, err = store.client.GetEx(ctx, key, store.ttl).Result()
	} else {
		value, err = store.client.Get(ctx, key).Result()
	}

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("redis_storage_get_failed: %w", err)
	}

	return value, nil
}

// Set stores value under key and refreshes its expiry.
func (store *Redis) Set(ctx context.Context, key, value string) error {
	if err := store.client.Set(ctx, key, value, store.ttl).Err(); err != nil {
		return fmt.Errorf("redis_storage_set_failed: %w", err)
	}
	return nil
}

// Delete removes keys in a single round trip.
func (store *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := store.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis_storage_delete_failed: %w", err)
	}
	return nil
}

// Ping checks Redis connectivity.
func (store *Redis) Ping(ctx context.Context) error {
	return platformredis.Ping(ctx, store.client)
}
