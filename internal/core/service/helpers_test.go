package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/infrastructure/db/kv"
	"github.com/dinedesk/restaurant-system/internal/infrastructure/db/memory"
)

const testSeedPassword = "2025DEVChallenge"

type recordingDispatcher struct {
	mu     sync.Mutex
	events []domain.OrderEvent
}

func (d *recordingDispatcher) Enqueue(e domain.OrderEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
}

func (d *recordingDispatcher) snapshot() []domain.OrderEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.OrderEvent, len(d.events))
	copy(out, d.events)
	return out
}

type fixture struct {
	store      *memory.KVStore
	repo       *kv.Repository
	identity   *IdentityService
	catalog    *CatalogService
	cart       *CartService
	orders     *OrderService
	dashboard  *DashboardService
	dispatcher *recordingDispatcher
}

// newFixture builds every component over a fresh in-memory store. When seed is
// true the fixture data is written before components load.
func newFixture(t *testing.T, seed bool) *fixture {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()

	store := memory.NewKVStore()
	repo := kv.NewRepository(store)
	if seed {
		if err := NewSeeder(repo, log).Seed(ctx); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	identity, err := NewIdentityService(repo, testSeedPassword, log)
	if err != nil {
		t.Fatalf("NewIdentityService returned error: %v", err)
	}
	identity.Load(ctx)

	catalog := NewCatalogService(repo, log)
	catalog.Load(ctx)

	cart := NewCartService(repo, log)
	dispatcher := &recordingDispatcher{}
	orders := NewOrderService(repo, cart, identity, dispatcher, 30*time.Minute, log)
	orders.Load(ctx)

	return &fixture{
		store:      store,
		repo:       repo,
		identity:   identity,
		catalog:    catalog,
		cart:       cart,
		orders:     orders,
		dashboard:  NewDashboardService(orders, catalog),
		dispatcher: dispatcher,
	}
}

func (f *fixture) menuItem(t *testing.T, name string) domain.MenuItem {
	t.Helper()
	for _, it := range f.catalog.List() {
		if it.Name == name {
			return it
		}
	}
	t.Fatalf("menu item %q not found", name)
	return domain.MenuItem{}
}
