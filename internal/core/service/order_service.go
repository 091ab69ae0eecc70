package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
	"github.com/dinedesk/restaurant-system/internal/pkg/metrics"
)

const defaultPrepTime = 30 * time.Minute

// OrderService turns carts into orders and drives the order state machine.
// It reads the cart and the session user only while placing an order and
// never mutates the catalog.
type OrderService struct {
	repo       ports.StateRepository
	cart       ports.CartService
	identity   ports.IdentityService
	dispatcher ports.EventDispatcher
	prepTime   time.Duration
	log        zerolog.Logger
	now        func() time.Time

	mu     sync.RWMutex
	orders []domain.Order
}

// NewOrderService wires the order component. dispatcher may be nil, in which
// case no events are emitted. A non-positive prepTime falls back to 30 minutes.
func NewOrderService(
	repo ports.StateRepository,
	cart ports.CartService,
	identity ports.IdentityService,
	dispatcher ports.EventDispatcher,
	prepTime time.Duration,
	log zerolog.Logger,
) *OrderService {
	if prepTime <= 0 {
		prepTime = defaultPrepTime
	}
	return &OrderService{
		repo:       repo,
		cart:       cart,
		identity:   identity,
		dispatcher: dispatcher,
		prepTime:   prepTime,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Load reads the order collection. A storage failure leaves the service empty.
func (s *OrderService) Load(ctx context.Context) {
	orders, err := s.repo.Orders(ctx)
	absorbStorageError(s.log, "load", collectionOrders, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
}

// Place converts the session's cart into a pending order and empties the cart.
// If an idempotency key is provided and already seen, the earlier order is
// returned without side effects.
func (s *OrderService) Place(ctx context.Context, in ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
	// Registered before the lock so events are handed off after Unlock.
	var events []domain.OrderEvent
	defer func() { s.emit(events...) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if in.IdempotencyKey != "" {
		for _, o := range s.orders {
			if o.IdempotencyKey == in.IdempotencyKey {
				s.log.Info().Str("idempotency_key", in.IdempotencyKey).Str("order_id", o.ID).Msg("idempotent replay")
				return &ports.PlaceOrderResult{Order: o.Clone(), AlreadyExisted: true}, nil
			}
		}
	}

	if len(s.cart.Items(ctx, in.SessionID)) == 0 {
		return nil, domain.ErrEmptyCart
	}

	user, err := s.identity.CurrentUser(ctx, in.SessionID)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	name := strings.TrimSpace(in.CustomerName)
	if name == "" && user != nil {
		name = user.Name
	}
	if name == "" {
		return nil, domain.ErrMissingCustomerName
	}

	userID := domain.GuestUserID
	if user != nil {
		userID = user.ID
	}

	// Take snapshots and empties the cart in one step, so a line added
	// after the check above is either in this order or still in the cart.
	items := s.cart.Take(ctx, in.SessionID)
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	now := s.now()
	order := domain.Order{
		ID:             newID(),
		UserID:         userID,
		CustomerName:   name,
		Items:          domain.CloneItems(items),
		Status:         domain.StatusPending,
		TotalAmount:    domain.TotalPrice(items),
		CreatedAt:      now,
		UpdatedAt:      now,
		IdempotencyKey: in.IdempotencyKey,
	}
	s.orders = append(s.orders, order)
	s.persist(ctx)

	userKind := "registered"
	if user == nil {
		userKind = "guest"
	}
	metrics.OrdersPlacedTotal.WithLabelValues(userKind).Inc()
	metrics.OrderRevenueTotal.Add(order.TotalAmount)

	events = append(events, domain.OrderEvent{
		Type:        domain.EventOrderPlaced,
		OrderID:     order.ID,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		OccurredAt:  now,
	})
	s.log.Info().
		Str("order_id", order.ID).
		Str("user_id", order.UserID).
		Int("lines", len(order.Items)).
		Float64("total", order.TotalAmount).
		Msg("order placed")

	return &ports.PlaceOrderResult{Order: order.Clone()}, nil
}

// AdvanceStatus moves an order one step along pending → preparing → ready →
// delivered. On a terminal order it returns the order unchanged. Callers are
// responsible for checking the update permission on orders.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID string) (domain.Order, error) {
	var events []domain.OrderEvent
	defer func() { s.emit(events...) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(orderID)
	if idx < 0 {
		return domain.Order{}, domain.ErrNotFound
	}
	current := s.orders[idx].Status
	next, ok := current.Next()
	if !ok {
		return s.orders[idx].Clone(), nil
	}

	now := s.now()
	s.orders[idx].Status = next
	s.orders[idx].UpdatedAt = now
	if next == domain.StatusPreparing {
		eta := now.Add(s.prepTime)
		s.orders[idx].EstimatedDeliveryTime = &eta
	}
	s.persist(ctx)
	events = append(events, s.recordTransition(s.orders[idx], current))

	return s.orders[idx].Clone(), nil
}

// Cancel moves a non-terminal order to cancelled. Cancelling a delivered or
// already cancelled order fails with domain.ErrInvalidTransition.
func (s *OrderService) Cancel(ctx context.Context, orderID string) (domain.Order, error) {
	var events []domain.OrderEvent
	defer func() { s.emit(events...) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(orderID)
	if idx < 0 {
		return domain.Order{}, domain.ErrNotFound
	}
	current := s.orders[idx].Status
	if !current.CanCancel() {
		return domain.Order{}, fmt.Errorf("cancel order: %w (from %s)", domain.ErrInvalidTransition, current)
	}

	s.orders[idx].Status = domain.StatusCancelled
	s.orders[idx].UpdatedAt = s.now()
	s.persist(ctx)
	events = append(events, s.recordTransition(s.orders[idx], current))

	return s.orders[idx].Clone(), nil
}

func (s *OrderService) GetByID(orderID string) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(orderID); idx >= 0 {
		return s.orders[idx].Clone(), true
	}
	return domain.Order{}, false
}

// ListForUser returns the orders placed by userID, in storage order.
func (s *OrderService) ListForUser(userID string) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0)
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o.Clone())
		}
	}
	return out
}

// List returns every order, in storage order.
func (s *OrderService) List() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	return out
}

func (s *OrderService) indexOf(orderID string) int {
	for i, o := range s.orders {
		if o.ID == orderID {
			return i
		}
	}
	return -1
}

// persist must be called with s.mu held.
func (s *OrderService) persist(ctx context.Context) {
	absorbStorageError(s.log, "save", collectionOrders, s.repo.SaveOrders(ctx, s.orders))
}

// recordTransition counts and logs a status change and returns the event to
// emit once s.mu is released.
func (s *OrderService) recordTransition(o domain.Order, from domain.OrderStatus) domain.OrderEvent {
	metrics.OrderTransitionsTotal.WithLabelValues(string(from), string(o.Status)).Inc()
	s.log.Info().
		Str("order_id", o.ID).
		Str("from", string(from)).
		Str("to", string(o.Status)).
		Msg("order status changed")
	return domain.OrderEvent{
		Type:           domain.EventOrderStatusChanged,
		OrderID:        o.ID,
		UserID:         o.UserID,
		PreviousStatus: from,
		Status:         o.Status,
		TotalAmount:    o.TotalAmount,
		OccurredAt:     o.UpdatedAt,
	}
}

// emit must be called without s.mu held.
func (s *OrderService) emit(events ...domain.OrderEvent) {
	if s.dispatcher == nil {
		return
	}
	for _, e := range events {
		s.dispatcher.Enqueue(e)
	}
}
