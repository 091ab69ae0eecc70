// Package redis stores restaurant records as Redis strings.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Options selects the Redis database and key namespace.
type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces every record key, e.g. "staging" stores "staging:orders".
	Prefix string
}

// Open dials Redis and returns a store that owns the client. The connection is
// verified before returning; the caller must Close the store.
func Open(ctx context.Context, opts Options) (*KVStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis open %s: %w", opts.Addr, err)
	}
	return NewKVStore(client, opts.Prefix), nil
}

// Close releases the underlying client.
func (s *KVStore) Close() error {
	return s.client.Close()
}
