// Package mongo stores restaurant records as documents of a single collection.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// opTimeout bounds every connect and record operation.
const opTimeout = 10 * time.Second

// Options selects the deployment and database holding the records collection.
type Options struct {
	URI      string
	Database string
}

// Open connects to MongoDB, pings the primary and returns a store over the
// records collection of opts.Database. The store owns the client.
func Open(ctx context.Context, opts Options) (*KVStore, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(opts.URI).
		SetServerSelectionTimeout(opTimeout))
	if err != nil {
		return nil, fmt.Errorf("mongo open: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return NewKVStore(client.Database(opts.Database)), nil
}

// Close disconnects the client backing the store.
func (s *KVStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.col.Database().Client().Disconnect(ctx)
}
