package queries

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGetOrderNotesQueryIsNotConstructed = errors.New(
		"GetOrderNotesQuery must be created via NewGetOrderNotesQuery constructor",
	)
)

// GetOrderNotesQuery lists the internal notes of an order, newest first.
type GetOrderNotesQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderNotesQuery(orderID kernel.UUID) (GetOrderNotesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderNotesQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	return GetOrderNotesQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderNotesQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderNotesQueryIsNotConstructed)
}

type GetOrderNotesQueryResponse struct {
	ID        kernel.UUID `json:"id"`
	Type      string      `json:"type"`
	Content   string      `json:"content"`
	CreatedBy string      `json:"createdBy"`
	CreatedAt time.Time   `json:"createdAt"`
}

type GetOrderNotesQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderNotesQueryHandler(db *gorm.DB) GetOrderNotesQueryHandler {
	return GetOrderNotesQueryHandler{db: db}
}

func (h GetOrderNotesQueryHandler) Handle(ctx context.Context, query GetOrderNotesQuery) ([]GetOrderNotesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	notes := make([]GetOrderNotesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, type, content, created_by, created_at
		FROM order_notes
		WHERE order_id = ?
		ORDER BY created_at DESC, id
	`, query.orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var n GetOrderNotesQueryResponse
		var id uuid.UUID
		if err = rows.Scan(&id, &n.Type, &n.Content, &n.CreatedBy, &n.CreatedAt); err != nil {
			return nil, err
		}
		noteID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		n.ID = noteID
		notes = append(notes, n)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}
