// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/database/schema"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/postgres"
)

// Postgres implements [Storage] on the dashboard_session_kv table.
//
// # Expiry
//
// Rows carry an expires_at timestamp refreshed on every write. Expired rows are
// invisible to Get and are physically removed by [Postgres.PurgeExpired].
type Postgres struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewPostgres creates a Postgres-backed store. A zero ttl keeps rows forever.
func NewPostgres(pool *pgxpool.Pool, ttl time.Duration) *Postgres {
	return &Postgres{pool: pool, ttl: ttl}
}

/*
Get retrieves the value stored under key.

Returns:
  - string: Stored value
  - error: ErrNotFound or database execution failure
*/
func (store *Postgres) Get(ctx context.Context, key string) (string, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND (%s IS NULL OR %s > NOW())`,
		schema.SessionKV.Value,
		schema.SessionKV.Table,
		schema.SessionKV.Key, schema.SessionKV.ExpiresAt, schema.SessionKV.ExpiresAt,
	)

	var value string
	err := store.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("postgres_storage_get_failed: %w", err)
	}

	return value, nil
}

/*
Set upserts the value stored under key and refreshes its expiry.
*/
func (store *Postgres) Set(ctx context.Context, key, value string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()`,
		schema.SessionKV.Table,
		schema.SessionKV.Key, schema.SessionKV.Value, schema.SessionKV.ExpiresAt, schema.SessionKV.UpdatedAt,
		schema.SessionKV.Key,
		schema.SessionKV.Value, schema.SessionKV.Value,
		schema.SessionKV.ExpiresAt, schema.SessionKV.ExpiresAt,
		schema.SessionKV.UpdatedAt,
	)

	if _, err := store.pool.Exec(ctx, query, key, value, store.expiresAt()); err != nil {
		return fmt.Errorf("postgres_storage_set_failed: %w", err)
	}
	return nil
}

// Delete removes keys in a single statement.
func (store *Postgres) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`,
		schema.SessionKV.Table, schema.SessionKV.Key,
	)

	if _, err := store.pool.Exec(ctx, query, keys); err != nil {
		return fmt.Errorf("postgres_storage_delete_failed: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (store *Postgres) Ping(ctx context.Context) error {
	return postgres.Ping(ctx, store.pool)
}

// PurgeExpired deletes expired rows and returns how many were removed.
func (store *Postgres) PurgeExpired(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s IS NOT NULL AND %s <= NOW()`,
		schema.SessionKV.Table, schema.SessionKV.ExpiresAt, schema.SessionKV.ExpiresAt,
	)

	tag, err := store.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("postgres_storage_purge_failed: %w", err)
	}
	return tag.RowsAffected(), nil
}

// expiresAt returns the expiry to store for a write, or nil when rows never expire.
func (store *Postgres) expiresAt() *time.Time {
	if store.ttl <= 0 {
		return nil
	}
	at := time.Now().Add(store.ttl)
	return &at
}
