package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for the fulfillment Order
// aggregate. Updates replace every sub-structure of the record as a whole.
type OrderRepository interface {
	// Add persists a new order. The id and order number must be unused.
	Add(ctx context.Context, aggregate *fulfillment.Order) error

	// Update writes the current state of an existing order.
	Update(ctx context.Context, aggregate *fulfillment.Order) error

	// Get retrieves an order by id.
	Get(ctx context.Context, id kernel.UUID) (*fulfillment.Order, error)

	// GetByNumber retrieves an order by its customer-facing order number.
	GetByNumber(ctx context.Context, orderNumber string) (*fulfillment.Order, error)

	// ListNeedingSteps returns up to limit ids of orders whose stored steps
	// are empty or still use the legacy single-step layout.
	ListNeedingSteps(ctx context.Context, limit int) ([]kernel.UUID, error)
}

// NoteRepository stores internal admin notes. Notes are append-only: there is
// no update or delete.
type NoteRepository interface {
	Append(ctx context.Context, note order.Note) error
	List(ctx context.Context, orderID kernel.UUID) ([]order.Note, error)
}
