package ports

import (
	"context"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

// PlaceOrderInput carries everything needed to turn a session's cart into an order.
type PlaceOrderInput struct {
	SessionID    string
	CustomerName string
	// IdempotencyKey, when set, makes retried placements return the first order.
	IdempotencyKey string
}

// PlaceOrderResult is returned by Place.
type PlaceOrderResult struct {
	Order domain.Order
	// AlreadyExisted is true when the idempotency key matched an earlier order.
	AlreadyExisted bool
}

// OrderService owns placed orders and their lifecycle.
type OrderService interface {
	Place(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error)
	AdvanceStatus(ctx context.Context, orderID string) (domain.Order, error)
	Cancel(ctx context.Context, orderID string) (domain.Order, error)
	GetByID(orderID string) (domain.Order, bool)
	ListForUser(userID string) []domain.Order
	List() []domain.Order
}

// DashboardService derives read-only summaries from orders and the menu.
type DashboardService interface {
	Stats(user *domain.User) domain.DashboardStats
	FinancialReport() domain.FinancialReport
}
