package service

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dinedesk/restaurant-system/internal/pkg/metrics"
)

// Collection labels used when reporting storage failures.
const (
	collectionUsers       = "users"
	collectionMenuItems   = "menu_items"
	collectionOrders      = "orders"
	collectionCart        = "cart"
	collectionSessionUser = "session_user"
)

// absorbStorageError records a persistence failure without failing the caller.
// In-memory state stays authoritative until the next successful write.
func absorbStorageError(log zerolog.Logger, op, collection string, err error) {
	if err == nil {
		return
	}
	metrics.StorageErrorsTotal.WithLabelValues(op, collection).Inc()
	log.Warn().
		Err(err).
		Str("op", op).
		Str("collection", collection).
		Msg("storage failure absorbed")
}

func newID() string {
	return uuid.NewString()
}
