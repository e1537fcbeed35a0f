package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
		"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
	)
)

// GetOpenOrdersQuery lists orders that still have work left: at least one
// step pending or in progress, or no steps stored yet.
//
// Example:
//
//	query := NewGetOpenOrdersQuery()
//	handler := NewGetOpenOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list open orders: %w", err)
//	}
//	for _, o := range orders {
//	    fmt.Printf("%s %d/%d steps done\n", o.OrderNumber, o.FinishedSteps, o.TotalSteps)
//	}
type GetOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOpenOrdersQuery() GetOpenOrdersQuery {
	return GetOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// GetOpenOrdersQueryResponse is one row of the admin work list.
type GetOpenOrdersQueryResponse struct {
	ID            kernel.UUID     `json:"id"`
	OrderNumber   string          `json:"orderNumber"`
	OrderType     string          `json:"orderType"`
	Country       string          `json:"country"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	FinishedSteps int             `json:"finishedSteps"`
	TotalSteps    int             `json:"totalSteps"`
}
