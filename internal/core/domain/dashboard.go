package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const popularItemsLimit = 5

// PopularItem is a menu item name with the total quantity sold.
type PopularItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DashboardStats summarises orders for a dashboard. It is derived, never stored.
type DashboardStats struct {
	TotalOrders     int           `json:"totalOrders"`
	TotalRevenue    float64       `json:"totalRevenue"`
	PendingOrders   int           `json:"pendingOrders"`
	PreparingOrders int           `json:"preparingOrders"`
	PopularItems    []PopularItem `json:"popularItems"`
}

// ScopeOrders returns the orders visible to user on a dashboard: customers see
// their own orders, every other role (and anonymous sessions) sees all of them.
func ScopeOrders(orders []Order, user *User) []Order {
	if user == nil || user.Role != RoleCustomer {
		return orders
	}
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.UserID == user.ID {
			out = append(out, o)
		}
	}
	return out
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ComputeDashboard derives the dashboard for user at instant now.
//
// Today's count and revenue cover orders created at or after local midnight;
// pending/preparing counts and the popularity ranking cover the whole scoped set.
func ComputeDashboard(orders []Order, user *User, now time.Time) DashboardStats {
	scoped := ScopeOrders(orders, user)
	midnight := StartOfDay(now)

	stats := DashboardStats{PopularItems: make([]PopularItem, 0, popularItemsLimit)}
	revenue := decimal.Zero
	for _, o := range scoped {
		if !o.CreatedAt.Before(midnight) {
			stats.TotalOrders++
			revenue = revenue.Add(decimal.NewFromFloat(o.TotalAmount))
		}
		switch o.Status {
		case StatusPending:
			stats.PendingOrders++
		case StatusPreparing:
			stats.PreparingOrders++
		}
	}
	stats.TotalRevenue = revenue.InexactFloat64()
	stats.PopularItems = rankPopularItems(scoped, popularItemsLimit)
	return stats
}

func rankPopularItems(orders []Order, limit int) []PopularItem {
	index := make(map[string]int)
	tally := make([]PopularItem, 0)
	for _, o := range orders {
		for _, it := range o.Items {
			i, ok := index[it.Name]
			if !ok {
				i = len(tally)
				index[it.Name] = i
				tally = append(tally, PopularItem{Name: it.Name})
			}
			tally[i].Count += it.Quantity
		}
	}
	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(tally, func(i, j int) bool {
		return tally[i].Count > tally[j].Count
	})
	if len(tally) > limit {
		tally = tally[:limit]
	}
	return tally
}
