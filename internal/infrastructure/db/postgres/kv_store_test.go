package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

// Set POSTGRES_DSN to run against a live database. The test only touches
// keys under the restaurant_test: prefix.
func TestKVStore_Integration(t *testing.T) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}
	ctx := context.Background()

	store, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	const key = "restaurant_test:orders"
	t.Cleanup(func() {
		_ = store.Remove(context.Background(), key)
		_ = store.Close()
	})

	if _, err := store.Get(ctx, key); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	for _, v := range []string{`[1]`, `[1,2]`} {
		if err := store.Set(ctx, key, []byte(v)); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := store.Get(ctx, key)
		if err != nil || string(got) != v {
			t.Fatalf("Get: got %q (%v), want %q", got, err, v)
		}
	}
	if err := store.Remove(ctx, key); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
