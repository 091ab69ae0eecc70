// Package kv maps the restaurant's five logical records onto a key-value store.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
)

// Record names. Users, menu items and orders are shared; the session user and
// cart records are suffixed with the session id.
const (
	KeySessionUser = "restaurant_user"
	KeyUsers       = "restaurant_users"
	KeyMenuItems   = "restaurant_menu_items"
	KeyOrders      = "restaurant_orders"
	KeyCart        = "restaurant_cart"
)

// Repository implements ports.StateRepository over any ports.KeyValueStore.
type Repository struct {
	store ports.KeyValueStore
}

// NewRepository wraps store.
func NewRepository(store ports.KeyValueStore) *Repository {
	return &Repository{store: store}
}

// SessionKey returns the per-session record name for base.
func SessionKey(base, sessionID string) string {
	return base + ":" + sessionID
}

func (r *Repository) Users(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	return users, r.load(ctx, KeyUsers, &users)
}

func (r *Repository) SaveUsers(ctx context.Context, users []domain.User) error {
	return r.save(ctx, KeyUsers, users)
}

func (r *Repository) MenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	items := []domain.MenuItem{}
	return items, r.load(ctx, KeyMenuItems, &items)
}

func (r *Repository) SaveMenuItems(ctx context.Context, items []domain.MenuItem) error {
	return r.save(ctx, KeyMenuItems, items)
}

func (r *Repository) Orders(ctx context.Context) ([]domain.Order, error) {
	orders := []domain.Order{}
	return orders, r.load(ctx, KeyOrders, &orders)
}

func (r *Repository) SaveOrders(ctx context.Context, orders []domain.Order) error {
	return r.save(ctx, KeyOrders, orders)
}

func (r *Repository) Cart(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	items := []domain.CartItem{}
	return items, r.load(ctx, SessionKey(KeyCart, sessionID), &items)
}

func (r *Repository) SaveCart(ctx context.Context, sessionID string, items []domain.CartItem) error {
	return r.save(ctx, SessionKey(KeyCart, sessionID), items)
}

func (r *Repository) ClearCart(ctx context.Context, sessionID string) error {
	return r.store.Remove(ctx, SessionKey(KeyCart, sessionID))
}

func (r *Repository) SessionUser(ctx context.Context, sessionID string) (*domain.User, error) {
	var u domain.User
	raw, err := r.store.Get(ctx, SessionKey(KeySessionUser, sessionID))
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeySessionUser, errors.Join(domain.ErrStorageUnavailable, err))
	}
	return &u, nil
}

func (r *Repository) SaveSessionUser(ctx context.Context, sessionID string, user domain.User) error {
	return r.save(ctx, SessionKey(KeySessionUser, sessionID), user)
}

func (r *Repository) RemoveSessionUser(ctx context.Context, sessionID string) error {
	return r.store.Remove(ctx, SessionKey(KeySessionUser, sessionID))
}

// load decodes key into dst. A missing key leaves dst untouched and is not an error.
func (r *Repository) load(ctx context.Context, key string, dst any) error {
	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, errors.Join(domain.ErrStorageUnavailable, err))
	}
	return nil
}

func (r *Repository) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.store.Set(ctx, key, raw)
}
