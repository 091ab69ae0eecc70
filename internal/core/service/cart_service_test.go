package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

func TestCartService_Add_MergesByMenuItem(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	burger := f.menuItem(t, "Classic Burger")

	for _, qty := range []int{1, 3, 2} {
		if _, err := f.cart.Add(ctx, "s1", burger, qty, ""); err != nil {
			t.Fatalf("Add returned error: %v", err)
		}
	}
	summary, err := f.cart.Add(ctx, "s1", burger, 4, "no onions")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("expected a single line, got %d", len(summary.Items))
	}
	if summary.Items[0].Quantity != 10 {
		t.Fatalf("expected quantity 10, got %d", summary.Items[0].Quantity)
	}
	if summary.Items[0].SpecialInstructions != "no onions" {
		t.Fatalf("expected instructions to be replaced, got %q", summary.Items[0].SpecialInstructions)
	}

	summary, _ = f.cart.Add(ctx, "s1", burger, 1, "")
	if summary.Items[0].SpecialInstructions != "no onions" {
		t.Fatalf("empty instructions must not overwrite, got %q", summary.Items[0].SpecialInstructions)
	}
}

func TestCartService_Add_InvalidQuantity(t *testing.T) {
	f := newFixture(t, true)
	if _, err := f.cart.Add(context.Background(), "s1", f.menuItem(t, "Cheesecake"), 0, ""); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestCartService_SetQuantityAndRemove(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	summary, _ := f.cart.Add(ctx, "s1", f.menuItem(t, "Cheesecake"), 1, "")
	lineID := summary.Items[0].ID

	summary, err := f.cart.SetQuantity(ctx, "s1", lineID, 5)
	if err != nil || summary.TotalItems != 5 {
		t.Fatalf("expected 5 items, got %+v (%v)", summary, err)
	}

	summary, err = f.cart.SetQuantity(ctx, "s1", lineID, 0)
	if err != nil || len(summary.Items) != 0 {
		t.Fatalf("expected line to be removed, got %+v (%v)", summary, err)
	}

	if _, err := f.cart.Remove(ctx, "s1", lineID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, _ = f.cart.Add(ctx, "s1", f.menuItem(t, "Cheesecake"), 2, "")
	if got := f.cart.TotalItemCount(ctx, "s2"); got != 0 {
		t.Fatalf("expected empty cart for s2, got %d", got)
	}

	reloaded := NewCartService(f.repo, f.cart.log)
	if got := reloaded.TotalItemCount(ctx, "s1"); got != 2 {
		t.Fatalf("expected persisted cart to reload with 2 items, got %d", got)
	}
}

func TestCartService_TotalPrice(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, _ = f.cart.Add(ctx, "s1", f.menuItem(t, "Classic Burger"), 2, "")
	_, _ = f.cart.Add(ctx, "s1", f.menuItem(t, "French Fries"), 1, "")

	if got := f.cart.TotalPrice(ctx, "s1"); got != 30.97 {
		t.Fatalf("expected 30.97, got %v", got)
	}
	if err := f.cart.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if got := f.cart.TotalPrice(ctx, "s1"); got != 0 {
		t.Fatalf("expected empty cart, got %v", got)
	}
}

func TestCartService_Take(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, _ = f.cart.Add(ctx, "s1", f.menuItem(t, "Classic Burger"), 2, "")
	lines := f.cart.Take(ctx, "s1")
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("unexpected lines: %+v", lines)
	}
	if got := f.cart.TotalItemCount(ctx, "s1"); got != 0 {
		t.Fatalf("expected empty cart after Take, got %d", got)
	}
	if stored, _ := f.repo.Cart(ctx, "s1"); len(stored) != 0 {
		t.Fatalf("expected stored cart to be cleared, got %+v", stored)
	}
	if again := f.cart.Take(ctx, "s1"); len(again) != 0 {
		t.Fatalf("expected second Take to be empty, got %+v", again)
	}
}

func TestCartService_EmptyCartsAreNotCached(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	for _, sid := range []string{"a", "b", "c"} {
		_ = f.cart.Summary(ctx, sid)
	}
	_, _ = f.cart.Add(ctx, "d", f.menuItem(t, "Cheesecake"), 1, "")
	_ = f.cart.Clear(ctx, "d")

	if got := len(f.cart.carts); got != 0 {
		t.Fatalf("expected no cached carts, got %d", got)
	}
}

func TestCartService_ClearStorageFailureKeepsCartEmpty(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, _ = f.cart.Add(ctx, "s1", f.menuItem(t, "Cheesecake"), 1, "")
	f.store.SetFailure(errors.New("timeout"))
	_ = f.cart.Clear(ctx, "s1")
	f.store.SetFailure(nil)

	if got := f.cart.TotalItemCount(ctx, "s1"); got != 0 {
		t.Fatalf("expected cart to stay empty in memory, got %d", got)
	}
}

func TestCartService_EvictIdle(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	f.cart.now = func() time.Time { return clock }

	_, _ = f.cart.Add(ctx, "old", f.menuItem(t, "Cheesecake"), 3, "")
	clock = clock.Add(2 * time.Hour)
	_, _ = f.cart.Add(ctx, "fresh", f.menuItem(t, "Cheesecake"), 1, "")

	if n := f.cart.EvictIdle(clock.Add(-time.Hour)); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if _, ok := f.cart.carts["fresh"]; !ok {
		t.Fatal("recently used cart was evicted")
	}
	if got := f.cart.TotalItemCount(ctx, "old"); got != 3 {
		t.Fatalf("expected evicted cart to reload with 3 items, got %d", got)
	}
}
