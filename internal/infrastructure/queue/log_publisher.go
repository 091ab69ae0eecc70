package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

// LogPublisher writes every order event to the structured log. It is always
// registered, so the event trail exists even without a broker.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.OrderEvent) error {
	p.log.Info().
		Str("event", string(event.Type)).
		Str("order_id", event.OrderID).
		Str("user_id", event.UserID).
		Str("from", string(event.PreviousStatus)).
		Str("to", string(event.Status)).
		Float64("total", event.TotalAmount).
		Time("occurred_at", event.OccurredAt).
		Msg("order event")
	return nil
}
