package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
	"github.com/dinedesk/restaurant-system/internal/infrastructure/queue"
)

func placeSample(t *testing.T, f *fixture, sessionID, name string) domain.Order {
	t.Helper()
	ctx := context.Background()
	_, _ = f.cart.Add(ctx, sessionID, f.menuItem(t, "Classic Burger"), 2, "")
	_, _ = f.cart.Add(ctx, sessionID, f.menuItem(t, "French Fries"), 1, "")
	res, err := f.orders.Place(ctx, ports.PlaceOrderInput{SessionID: sessionID, CustomerName: name})
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	return res.Order
}

func TestOrderService_Place_EndToEnd(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, _ = f.cart.Add(ctx, "s1", f.menuItem(t, "Classic Burger"), 2, "")
	_, _ = f.cart.Add(ctx, "s1", f.menuItem(t, "French Fries"), 1, "")
	before := f.cart.TotalPrice(ctx, "s1")
	if before != 30.97 {
		t.Fatalf("expected cart total 30.97, got %v", before)
	}

	res, err := f.orders.Place(ctx, ports.PlaceOrderInput{SessionID: "s1", CustomerName: "Jane"})
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	o := res.Order
	if o.TotalAmount != before || o.Status != domain.StatusPending || len(o.Items) != 2 {
		t.Fatalf("unexpected order: %+v", o)
	}
	if o.UserID != domain.GuestUserID {
		t.Fatalf("expected guest user id, got %q", o.UserID)
	}
	if !o.CreatedAt.Equal(o.UpdatedAt) {
		t.Fatalf("expected createdAt == updatedAt")
	}
	if got := len(f.cart.Items(ctx, "s1")); got != 0 {
		t.Fatalf("expected cart to be empty, got %d lines", got)
	}

	events := f.dispatcher.snapshot()
	if len(events) != 1 || events[0].Type != domain.EventOrderPlaced || events[0].OrderID != o.ID {
		t.Fatalf("expected one order.placed event, got %+v", events)
	}
}

func TestOrderService_Place_EmptyCart(t *testing.T) {
	f := newFixture(t, true)
	before := len(f.orders.List())

	_, err := f.orders.Place(context.Background(), ports.PlaceOrderInput{SessionID: "s1", CustomerName: "Jane"})
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if got := len(f.orders.List()); got != before {
		t.Fatalf("expected %d orders, got %d", before, got)
	}
	if len(f.dispatcher.snapshot()) != 0 {
		t.Fatalf("expected no events")
	}
}

func TestOrderService_Place_CustomerName(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, _ = f.cart.Add(ctx, "anon", f.menuItem(t, "Cheesecake"), 1, "")
	if _, err := f.orders.Place(ctx, ports.PlaceOrderInput{SessionID: "anon", CustomerName: "   "}); !errors.Is(err, domain.ErrMissingCustomerName) {
		t.Fatalf("expected ErrMissingCustomerName, got %v", err)
	}
	if got := len(f.cart.Items(ctx, "anon")); got != 1 {
		t.Fatalf("failed placement must keep the cart, got %d lines", got)
	}

	user, err := f.identity.Login(ctx, "s1", "newuser", testSeedPassword)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	_, _ = f.cart.Add(ctx, "s1", f.menuItem(t, "Cheesecake"), 1, "")
	res, err := f.orders.Place(ctx, ports.PlaceOrderInput{SessionID: "s1"})
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if res.Order.CustomerName != "Customer User" || res.Order.UserID != user.ID {
		t.Fatalf("expected session user's name and id, got %+v", res.Order)
	}

	_, _ = f.cart.Add(ctx, "s1", f.menuItem(t, "Cheesecake"), 1, "")
	res, err = f.orders.Place(ctx, ports.PlaceOrderInput{SessionID: "s1", CustomerName: "Table 4"})
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if res.Order.CustomerName != "Table 4" {
		t.Fatalf("explicit name must win, got %q", res.Order.CustomerName)
	}
}

func TestOrderService_Place_Idempotent(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, _ = f.cart.Add(ctx, "s1", f.menuItem(t, "Cheesecake"), 1, "")
	first, err := f.orders.Place(ctx, ports.PlaceOrderInput{SessionID: "s1", CustomerName: "Jane", IdempotencyKey: "k-1"})
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	count := len(f.orders.List())

	again, err := f.orders.Place(ctx, ports.PlaceOrderInput{SessionID: "s1", CustomerName: "Jane", IdempotencyKey: "k-1"})
	if err != nil {
		t.Fatalf("replay returned error: %v", err)
	}
	if !again.AlreadyExisted || again.Order.ID != first.Order.ID {
		t.Fatalf("expected replay of %s, got %+v", first.Order.ID, again)
	}
	if got := len(f.orders.List()); got != count {
		t.Fatalf("replay must not create orders, got %d want %d", got, count)
	}
}

func TestOrderService_AdvanceStatus(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	order := placeSample(t, f, "s1", "Jane")

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.orders.now = func() time.Time { return fixed }

	want := []domain.OrderStatus{domain.StatusPreparing, domain.StatusReady, domain.StatusDelivered}
	for _, status := range want {
		got, err := f.orders.AdvanceStatus(ctx, order.ID)
		if err != nil {
			t.Fatalf("AdvanceStatus returned error: %v", err)
		}
		if got.Status != status {
			t.Fatalf("expected %s, got %s", status, got.Status)
		}
		if status == domain.StatusPreparing {
			if got.EstimatedDeliveryTime == nil || !got.EstimatedDeliveryTime.Equal(fixed.Add(30*time.Minute)) {
				t.Fatalf("expected ETA 30 minutes out, got %v", got.EstimatedDeliveryTime)
			}
		}
	}

	delivered, _ := f.orders.GetByID(order.ID)
	f.orders.now = func() time.Time { return fixed.Add(time.Hour) }
	for i := 0; i < 3; i++ {
		got, err := f.orders.AdvanceStatus(ctx, order.ID)
		if err != nil {
			t.Fatalf("AdvanceStatus returned error: %v", err)
		}
		if got.Status != domain.StatusDelivered || !got.UpdatedAt.Equal(delivered.UpdatedAt) {
			t.Fatalf("delivered order must not change, got %+v", got)
		}
	}

	if _, err := f.orders.AdvanceStatus(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderService_Cancel(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	order := placeSample(t, f, "s1", "Jane")

	cancelled, err := f.orders.Cancel(ctx, order.ID)
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if cancelled.Status != domain.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if _, err := f.orders.Cancel(ctx, order.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	got, err := f.orders.AdvanceStatus(ctx, order.ID)
	if err != nil || got.Status != domain.StatusCancelled {
		t.Fatalf("cancelled is terminal, got %+v (%v)", got, err)
	}

	events := f.dispatcher.snapshot()
	last := events[len(events)-1]
	if last.Type != domain.EventOrderStatusChanged || last.PreviousStatus != domain.StatusPending || last.Status != domain.StatusCancelled {
		t.Fatalf("unexpected last event: %+v", last)
	}
}

func TestOrderService_SnapshotSurvivesMenuDelete(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	order := placeSample(t, f, "s1", "Jane")
	burger := f.menuItem(t, "Classic Burger")

	if err := f.catalog.DeleteItem(ctx, burger.ID); err != nil {
		t.Fatalf("DeleteItem returned error: %v", err)
	}
	got, ok := f.orders.GetByID(order.ID)
	if !ok {
		t.Fatalf("order not found")
	}
	if len(got.Items) != 2 || got.Items[0].MenuItemID != burger.ID || got.Items[0].Name != "Classic Burger" {
		t.Fatalf("order items changed: %+v", got.Items)
	}
}

func TestOrderService_ListForUser(t *testing.T) {
	f := newFixture(t, true)

	samples := f.orders.ListForUser(sampleCustomerID)
	if len(samples) != 2 {
		t.Fatalf("expected 2 sample orders, got %d", len(samples))
	}
	placeSample(t, f, "s1", "Jane")
	if got := f.orders.ListForUser(domain.GuestUserID); len(got) != 1 {
		t.Fatalf("expected 1 guest order, got %d", len(got))
	}
}

func TestOrderService_StorageFailureIsAbsorbed(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	_, _ = f.cart.Add(ctx, "s1", f.menuItem(t, "Cheesecake"), 1, "")
	f.store.SetFailure(errors.New("disk full"))

	res, err := f.orders.Place(ctx, ports.PlaceOrderInput{SessionID: "s1", CustomerName: "Jane"})
	if err != nil {
		t.Fatalf("Place must absorb storage failures, got %v", err)
	}
	if _, ok := f.orders.GetByID(res.Order.ID); !ok {
		t.Fatalf("expected order to be kept in memory")
	}

	f.store.SetFailure(nil)
	stored, _ := f.repo.Orders(ctx)
	if len(stored) != 2 {
		t.Fatalf("expected only seeded orders in storage, got %d", len(stored))
	}
}

// lateAddCart adds a line right after the first Items call, as a concurrent
// request would between the emptiness check and the cart snapshot.
type lateAddCart struct {
	*CartService
	late domain.MenuItem
	once sync.Once
}

func (c *lateAddCart) Items(ctx context.Context, sessionID string) []domain.CartItem {
	items := c.CartService.Items(ctx, sessionID)
	c.once.Do(func() { _, _ = c.CartService.Add(ctx, sessionID, c.late, 1, "") })
	return items
}

func TestOrderService_Place_IncludesLineAddedDuringCheckout(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	cart := &lateAddCart{CartService: f.cart, late: f.menuItem(t, "Cheesecake")}
	orders := NewOrderService(f.repo, cart, f.identity, nil, time.Minute, zerolog.Nop())
	_, _ = f.cart.Add(ctx, "s1", f.menuItem(t, "Classic Burger"), 1, "")

	res, err := orders.Place(ctx, ports.PlaceOrderInput{SessionID: "s1", CustomerName: "Jane"})
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}
	if len(res.Order.Items) != 2 {
		t.Fatalf("expected both lines in the order, got %+v", res.Order.Items)
	}
	if got := f.cart.TotalItemCount(ctx, "s1"); got != 0 {
		t.Fatalf("expected cart to be empty, got %d", got)
	}
}

// gatedDispatcher blocks every Enqueue until release is closed.
type gatedDispatcher struct {
	entered chan struct{}
	release chan struct{}
}

func (d *gatedDispatcher) Enqueue(domain.OrderEvent) {
	d.entered <- struct{}{}
	<-d.release
}

func TestOrderService_EventsAreEmittedOutsideTheLock(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	d := &gatedDispatcher{entered: make(chan struct{}, 1), release: make(chan struct{})}
	defer close(d.release)
	orders := NewOrderService(f.repo, f.cart, f.identity, d, time.Minute, zerolog.Nop())
	orders.Load(ctx)
	_, _ = f.cart.Add(ctx, "s1", f.menuItem(t, "Cheesecake"), 1, "")

	go func() {
		_, _ = orders.Place(ctx, ports.PlaceOrderInput{SessionID: "s1", CustomerName: "Jane"})
	}()
	select {
	case <-d.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("Place never emitted its event")
	}

	listed := make(chan int, 1)
	go func() { listed <- len(orders.List()) }()
	select {
	case n := <-listed:
		if n != 3 {
			t.Fatalf("expected 3 orders, got %d", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("List blocked while an event was being emitted")
	}
}

type stuckPublisher struct{}

func (stuckPublisher) Publish(ctx context.Context, _ domain.OrderEvent) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestOrderService_StuckPublisherDoesNotStallOrders(t *testing.T) {
	f := newFixture(t, true)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := queue.NewDispatcher(1, zerolog.Nop(), queue.NamedPublisher{Name: "stuck", Publisher: stuckPublisher{}})
	d.Start(ctx)
	orders := NewOrderService(f.repo, f.cart, f.identity, d, time.Minute, zerolog.Nop())
	orders.Load(ctx)
	burger := f.menuItem(t, "Classic Burger")

	const placed = 300
	done := make(chan error, 1)
	go func() {
		for i := 0; i < placed; i++ {
			if _, err := f.cart.Add(ctx, "s1", burger, 1, ""); err != nil {
				done <- err
				return
			}
			if _, err := orders.Place(ctx, ports.PlaceOrderInput{SessionID: "s1", CustomerName: "Jane"}); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("placing orders failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("orders stalled behind a stuck publisher")
	}
	if got := len(orders.List()); got != placed+2 {
		t.Fatalf("expected %d orders, got %d", placed+2, got)
	}
}
