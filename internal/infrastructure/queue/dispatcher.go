package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
	"github.com/dinedesk/restaurant-system/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// NamedPublisher pairs a publisher with the label used in logs and metrics.
type NamedPublisher struct {
	Name      string
	Publisher ports.EventPublisher
}

// Dispatcher routes order events to a fixed set of workers using consistent
// hashing on the order id, so events of one order are delivered in order.
// Every event is handed to every publisher; a failing publisher does not stop
// the others.
type Dispatcher struct {
	workers    []chan domain.OrderEvent
	publishers []NamedPublisher
	log        zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger, publishers ...NamedPublisher) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:    make([]chan domain.OrderEvent, numWorkers),
		publishers: publishers,
		log:        log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.OrderEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an event to the worker responsible for its order. It never
// blocks: when that worker's queue is full the event is dropped, logged and
// counted in events_dropped_total.
func (d *Dispatcher) Enqueue(event domain.OrderEvent) {
	idx := d.shardIndex(event.OrderID)
	label := strconv.Itoa(idx)
	select {
	case d.workers[idx] <- event:
		metrics.EventsQueueDepth.WithLabelValues(label).Set(float64(len(d.workers[idx])))
	default:
		metrics.EventsDroppedTotal.WithLabelValues(label).Inc()
		d.log.Warn().
			Str("order_id", event.OrderID).
			Str("event", string(event.Type)).
			Int("worker_id", idx).
			Msg("event queue full, dropping event")
	}
}

func (d *Dispatcher) shardIndex(orderID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.OrderEvent) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.EventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.publish(ctx, id, event)
		}
	}
}

func (d *Dispatcher) publish(ctx context.Context, workerID int, event domain.OrderEvent) {
	for _, p := range d.publishers {
		if err := p.Publisher.Publish(ctx, event); err != nil {
			metrics.EventsPublishedTotal.WithLabelValues(p.Name, "error").Inc()
			d.log.Error().Err(err).
				Str("publisher", p.Name).
				Str("order_id", event.OrderID).
				Str("event", string(event.Type)).
				Int("worker_id", workerID).
				Msg("event publishing failed")
			continue
		}
		metrics.EventsPublishedTotal.WithLabelValues(p.Name, "ok").Inc()
	}
}
