package ports

import (
	"context"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

// KeyValueStore is the raw persistence contract: JSON documents addressed by name.
// Get returns domain.ErrKeyNotFound for a key that was never set; any other
// failure wraps domain.ErrStorageUnavailable.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// StateRepository exposes typed access to the five persisted records.
// Missing records read as empty collections (or a nil session user).
type StateRepository interface {
	Users(ctx context.Context) ([]domain.User, error)
	SaveUsers(ctx context.Context, users []domain.User) error

	MenuItems(ctx context.Context) ([]domain.MenuItem, error)
	SaveMenuItems(ctx context.Context, items []domain.MenuItem) error

	Orders(ctx context.Context) ([]domain.Order, error)
	SaveOrders(ctx context.Context, orders []domain.Order) error

	// Cart and session user records are scoped to a browser session, not a user.
	Cart(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	SaveCart(ctx context.Context, sessionID string, items []domain.CartItem) error
	ClearCart(ctx context.Context, sessionID string) error

	SessionUser(ctx context.Context, sessionID string) (*domain.User, error)
	SaveSessionUser(ctx context.Context, sessionID string, user domain.User) error
	RemoveSessionUser(ctx context.Context, sessionID string) error
}
