package ports

import (
	"context"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

// CartSummary is a cart with its derived totals.
type CartSummary struct {
	Items      []domain.CartItem
	TotalPrice float64
	TotalItems int
}

// CartService owns the in-progress order of each session.
type CartService interface {
	Add(ctx context.Context, sessionID string, item domain.MenuItem, quantity int, instructions string) (CartSummary, error)
	SetQuantity(ctx context.Context, sessionID, lineID string, quantity int) (CartSummary, error)
	Remove(ctx context.Context, sessionID, lineID string) (CartSummary, error)
	Clear(ctx context.Context, sessionID string) error
	// Take returns the cart lines and empties the cart atomically.
	Take(ctx context.Context, sessionID string) []domain.CartItem
	Items(ctx context.Context, sessionID string) []domain.CartItem
	Summary(ctx context.Context, sessionID string) CartSummary
	TotalPrice(ctx context.Context, sessionID string) float64
	TotalItemCount(ctx context.Context, sessionID string) int
}
