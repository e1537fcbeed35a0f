package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
)

// OrderReader loads an order aggregate outside of any command transaction.
// Query handlers built on it never write the order back.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*fulfillment.Order, error)
}
