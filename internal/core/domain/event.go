package domain

import "time"

// OrderEventType names what happened to an order.
type OrderEventType string

const (
	EventOrderPlaced        OrderEventType = "order.placed"
	EventOrderStatusChanged OrderEventType = "order.status_changed"
)

// OrderEvent is emitted whenever an order is placed or changes status.
type OrderEvent struct {
	Type           OrderEventType `json:"type"`
	OrderID        string         `json:"orderId"`
	UserID         string         `json:"userId"`
	PreviousStatus OrderStatus    `json:"previousStatus,omitempty"`
	Status         OrderStatus    `json:"status"`
	TotalAmount    float64        `json:"totalAmount"`
	OccurredAt     time.Time      `json:"occurredAt"`
}
