package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

func TestSeeder_Seed(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	users, _ := f.repo.Users(ctx)
	if len(users) != 3 {
		t.Fatalf("expected 3 seed users, got %d", len(users))
	}
	menu, _ := f.repo.MenuItems(ctx)
	if len(menu) != 8 || menu[0].Name != "Classic Burger" || menu[7].Name != "Chicken Wings" {
		t.Fatalf("unexpected seed menu: %+v", menu)
	}
	orders, _ := f.repo.Orders(ctx)
	if len(orders) != 2 {
		t.Fatalf("expected 2 sample orders, got %d", len(orders))
	}
	if orders[0].Status != domain.StatusPreparing || orders[0].TotalAmount != 30.97 {
		t.Fatalf("unexpected first sample order: %+v", orders[0])
	}
	if orders[1].Status != domain.StatusPending || orders[1].TotalAmount != 14.99 {
		t.Fatalf("unexpected second sample order: %+v", orders[1])
	}
}

func TestSeeder_SkipsPopulatedCollections(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	before, _ := f.repo.MenuItems(ctx)

	if err := NewSeeder(f.repo, zerolog.Nop()).Seed(ctx); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	after, _ := f.repo.MenuItems(ctx)
	if len(after) != len(before) || after[0].ID != before[0].ID {
		t.Fatalf("seed must not overwrite existing menu")
	}
	orders, _ := f.repo.Orders(ctx)
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
}
