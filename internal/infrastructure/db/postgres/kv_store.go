// Package postgres stores restaurant records in a single PostgreSQL table.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS restaurant_records (
    key        TEXT PRIMARY KEY,
    value      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Open creates a pool, verifies it with a ping and makes sure the records
// table exists. The returned store owns the pool.
func Open(ctx context.Context, dsn string) (*KVStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres migrate: %w", err)
	}
	return NewKVStore(pool), nil
}

// KVStore implements ports.KeyValueStore on the restaurant_records table.
type KVStore struct {
	pool *pgxpool.Pool
}

func NewKVStore(pool *pgxpool.Pool) *KVStore {
	return &KVStore{pool: pool}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM restaurant_records WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get %q: %w", key, errors.Join(domain.ErrStorageUnavailable, err))
	}
	return value, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO restaurant_records (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("postgres set %q: %w", key, errors.Join(domain.ErrStorageUnavailable, err))
	}
	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM restaurant_records WHERE key = $1`, key); err != nil {
		return fmt.Errorf("postgres delete %q: %w", key, errors.Join(domain.ErrStorageUnavailable, err))
	}
	return nil
}

// Ping checks connectivity for the readiness probe.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close waits for in-flight queries and closes the pool.
func (s *KVStore) Close() error {
	s.pool.Close()
	return nil
}
