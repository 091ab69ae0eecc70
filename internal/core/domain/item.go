package domain

import "github.com/shopspring/decimal"

// OrderItem is a single line of a cart or order.
type OrderItem struct {
	ID                  string  `json:"id"`
	MenuItemID          string  `json:"menuItemId"`
	Name                string  `json:"name"`
	Price               float64 `json:"price"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
}

// CartItem has the same shape as OrderItem; a placed order snapshots cart lines as-is.
type CartItem = OrderItem

// Subtotal returns price × quantity for the line.
func (i OrderItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TotalPrice sums price × quantity over items using decimal arithmetic so that
// binary floating-point drift does not leak into stored totals.
func TotalPrice(items []OrderItem) float64 {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total.InexactFloat64()
}

// TotalQuantity sums the quantities over items.
func TotalQuantity(items []OrderItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// CloneItems returns a deep copy of items.
func CloneItems(items []OrderItem) []OrderItem {
	if items == nil {
		return nil
	}
	out := make([]OrderItem, len(items))
	copy(out, items)
	return out
}
