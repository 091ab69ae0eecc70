package domain

import (
	"sort"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// nextStatus is the forward-only kitchen workflow. Terminal states have no entry.
var nextStatus = map[OrderStatus]OrderStatus{
	StatusPending:   StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusDelivered,
}

// statusRank orders statuses for display: work that needs attention first.
var statusRank = map[OrderStatus]int{
	StatusPending:   0,
	StatusPreparing: 1,
	StatusReady:     2,
	StatusDelivered: 3,
	StatusCancelled: 4,
}

// Next returns the status that follows s. For terminal statuses it returns s and false.
func (s OrderStatus) Next() (OrderStatus, bool) {
	next, ok := nextStatus[s]
	if !ok {
		return s, false
	}
	return next, true
}

// IsTerminal reports whether no further transition leaves s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanCancel reports whether an order in status s may be cancelled.
func (s OrderStatus) CanCancel() bool {
	_, known := statusRank[s]
	return known && !s.IsTerminal()
}

// IsValid reports whether s is one of the known statuses.
func (s OrderStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// Rank returns the display rank of s; unknown statuses sort last.
func (s OrderStatus) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return len(statusRank)
}

// Order is a placed order. Items is a snapshot of the cart at placement time and
// is never rewritten by later catalog edits.
type Order struct {
	ID                    string      `json:"id"`
	UserID                string      `json:"userId"`
	CustomerName          string      `json:"customerName"`
	Items                 []OrderItem `json:"items"`
	Status                OrderStatus `json:"status"`
	TotalAmount           float64     `json:"totalAmount"`
	CreatedAt             time.Time   `json:"createdAt"`
	UpdatedAt             time.Time   `json:"updatedAt"`
	EstimatedDeliveryTime *time.Time  `json:"estimatedDeliveryTime,omitempty"`
	IdempotencyKey        string      `json:"idempotencyKey,omitempty"`
}

// Clone returns a deep copy of o.
func (o Order) Clone() Order {
	c := o
	c.Items = CloneItems(o.Items)
	if o.EstimatedDeliveryTime != nil {
		t := *o.EstimatedDeliveryTime
		c.EstimatedDeliveryTime = &t
	}
	return c
}

// SortForDisplay orders by status rank, then newest first. The sort is stable so
// orders with identical rank and timestamp keep their storage order.
func SortForDisplay(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		ri, rj := orders[i].Status.Rank(), orders[j].Status.Rank()
		if ri != rj {
			return ri < rj
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// FilterByStatus returns the orders whose status is in statuses. An empty
// statuses list returns orders unchanged.
func FilterByStatus(orders []Order, statuses ...OrderStatus) []Order {
	if len(statuses) == 0 {
		return orders
	}
	want := make(map[OrderStatus]struct{}, len(statuses))
	for _, s := range statuses {
		want[s] = struct{}{}
	}
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if _, ok := want[o.Status]; ok {
			out = append(out, o)
		}
	}
	return out
}
