package service

import (
	"context"
	"testing"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

func TestDashboardService_Stats_ScopesCustomers(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	customer, err := f.identity.Login(ctx, "s1", "newuser", testSeedPassword)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	placeSample(t, f, "s1", "")

	own := f.dashboard.Stats(customer)
	if own.TotalOrders != 1 || own.PendingOrders != 1 || own.PreparingOrders != 0 {
		t.Fatalf("unexpected customer stats: %+v", own)
	}
	if own.TotalRevenue != 30.97 {
		t.Fatalf("expected revenue 30.97, got %v", own.TotalRevenue)
	}

	chef := &domain.User{ID: "c", Role: domain.RoleChef}
	all := f.dashboard.Stats(chef)
	if all.TotalOrders != 3 || all.PendingOrders != 2 || all.PreparingOrders != 1 {
		t.Fatalf("unexpected staff stats: %+v", all)
	}
	if len(all.PopularItems) == 0 || all.PopularItems[0].Name != "Classic Burger" || all.PopularItems[0].Count != 4 {
		t.Fatalf("unexpected popular items: %+v", all.PopularItems)
	}
}

func TestDashboardService_FinancialReport(t *testing.T) {
	f := newFixture(t, true)

	report := f.dashboard.FinancialReport()
	if report.TotalOrders != 2 {
		t.Fatalf("expected 2 orders in report, got %d", report.TotalOrders)
	}
	if len(report.DailyRevenue) != 7 {
		t.Fatalf("expected 7 daily buckets, got %d", len(report.DailyRevenue))
	}
}
