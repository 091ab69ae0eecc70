// Package metrics defines and registers all custom Prometheus metrics of the
// restaurant service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// via promauto; the /metrics endpoint exposes them together with the HTTP
// request metrics collected by the echo middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "restaurant"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersPlacedTotal counts orders created from a cart.
// Label:
//   - user_kind: "guest" or "registered"
var OrdersPlacedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed.",
	},
	[]string{"user_kind"},
)

// OrderRevenueTotal accumulates the total amount of placed orders.
var OrderRevenueTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_revenue_total",
		Help:      "Sum of totalAmount over all placed orders.",
	},
)

// OrderTransitionsTotal counts status changes.
// Labels:
//   - from: previous status
//   - to:   new status
var OrderTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Total number of order status transitions.",
	},
	[]string{"from", "to"},
)

// ── Storage metrics ───────────────────────────────────────────────────────────

// StorageErrorsTotal counts persistence failures that were absorbed by a component.
// Labels:
//   - op:         "load" or "save"
//   - collection: users, menu_items, orders, cart, session_user
var StorageErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_errors_total",
		Help:      "Total number of key-value store failures absorbed by the service.",
	},
	[]string{"op", "collection"},
)

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsPublishedTotal counts order events delivered to a publisher.
// Labels:
//   - publisher: "amqp", "websocket", "log"
//   - result:    "ok" or "error"
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of order events handed to publishers, by outcome.",
	},
	[]string{"publisher", "result"},
)

// EventsDroppedTotal counts order events discarded because the worker
// responsible for the order had a full queue.
// Label:
//   - worker_id: numeric worker index
var EventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Total number of order events dropped because a dispatcher queue was full.",
	},
	[]string{"worker_id"},
)

// EventsQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// StreamClients tracks connected WebSocket order-feed clients.
var StreamClients = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "order_stream_clients",
		Help:      "Number of connected order stream WebSocket clients.",
	},
)
