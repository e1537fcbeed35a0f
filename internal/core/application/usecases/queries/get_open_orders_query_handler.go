package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/step"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler reads the work list straight from the orders
// table. Step counts are computed by PostgreSQL from the steps document.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle returns open orders, oldest first.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, order_number, order_type, country, total_price, finished_steps, total_steps
		FROM (
			SELECT
				o.id,
				o.order_number,
				o.order_type,
				o.country,
				o.total_price,
				o.created_at,
				(SELECT count(*) FROM jsonb_array_elements(s.steps) e
				 WHERE e->>'status' IN (?, ?)) AS finished_steps,
				jsonb_array_length(s.steps) AS total_steps
			FROM orders o
			CROSS JOIN LATERAL (
				SELECT CASE WHEN jsonb_typeof(o.steps) = 'array' THEN o.steps ELSE '[]'::jsonb END AS steps
			) s
		) t
		WHERE total_steps = 0 OR finished_steps < total_steps
		ORDER BY created_at, id
	`, step.Completed.String(), step.Skipped.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOpenOrdersQueryResponse
		var id uuid.UUID
		var total decimal.Decimal
		var country *string

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.OrderType,
			&country,
			&total,
			&resp.FinishedSteps,
			&resp.TotalSteps,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.TotalPrice = total
		if country != nil {
			resp.Country = *country
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
