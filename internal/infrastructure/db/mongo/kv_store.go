package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

const collectionRecords = "records"

// KVStore keeps each record as one document keyed by record name.
type KVStore struct {
	col *mongo.Collection
}

type recordDoc struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewKVStore creates a KVStore over the records collection of db.
func NewKVStore(db *mongo.Database) *KVStore {
	return &KVStore{col: db.Collection(collectionRecords)}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc recordDoc
	err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("mongo find %q: %w", key, errors.Join(domain.ErrStorageUnavailable, err))
	}
	return []byte(doc.Value), nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc := recordDoc{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert %q: %w", key, errors.Join(domain.ErrStorageUnavailable, err))
	}
	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %q: %w", key, errors.Join(domain.ErrStorageUnavailable, err))
	}
	return nil
}

// Ping checks connectivity for the readiness probe.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.col.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}
