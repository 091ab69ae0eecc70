// Package memory provides a process-local key-value store used for development
// and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

// KVStore keeps values in a map. The zero value is not usable; call NewKVStore.
type KVStore struct {
	mu   sync.RWMutex
	data map[string][]byte
	// failure, when set, is returned by every operation to simulate an
	// unavailable backend.
	failure error
}

// NewKVStore returns an empty store.
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string][]byte)}
}

// SetFailure makes every subsequent call fail with err wrapped in
// domain.ErrStorageUnavailable. Pass nil to recover.
func (s *KVStore) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

func (s *KVStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failure != nil {
		return nil, s.unavailable("get", key)
	}
	v, ok := s.data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *KVStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.unavailable("set", key)
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}

func (s *KVStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.unavailable("remove", key)
	}
	delete(s.data, key)
	return nil
}

// Ping reports the simulated availability of the store.
func (s *KVStore) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failure != nil {
		return s.unavailable("ping", "")
	}
	return nil
}

func (s *KVStore) unavailable(op, key string) error {
	return fmt.Errorf("memory %s %q: %w: %v", op, key, domain.ErrStorageUnavailable, s.failure)
}
