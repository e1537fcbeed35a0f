package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/step"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderStepsQueryIsNotConstructed = errors.New(
		"GetOrderStepsQuery must be created via NewGetOrderStepsQuery constructor",
	)
)

// GetOrderStepsQuery returns the processing steps of an order as the admin
// sees them.
//
// Orders stored without steps get freshly generated ones, and legacy
// single-step authority records are shown migrated. Neither is written back;
// the backfill job persists them.
type GetOrderStepsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderStepsQuery(orderID kernel.UUID) (GetOrderStepsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStepsQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	return GetOrderStepsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderStepsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStepsQueryIsNotConstructed)
}

func (q GetOrderStepsQuery) OrderID() kernel.UUID { return q.orderID }

// StepView is a step together with the metadata fields the admin may edit.
type StepView struct {
	step.State
	EditableFields []string `json:"editableFields"`
}

// GetOrderStepsQueryResponse lists the steps in processing order.
type GetOrderStepsQueryResponse struct {
	OrderID  kernel.UUID   `json:"orderId"`
	Steps    []StepView    `json:"steps"`
	Progress step.Progress `json:"progress"`
	Percent  int           `json:"percent"`
	// Unsaved is true when the steps shown differ from the stored ones.
	Unsaved bool `json:"unsaved"`
}
