package ports

import (
	"context"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

// EventPublisher delivers an order event to one downstream consumer.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}

// EventDispatcher accepts order events for asynchronous delivery.
type EventDispatcher interface {
	Enqueue(event domain.OrderEvent)
}
