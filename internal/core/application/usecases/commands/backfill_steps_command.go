package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrBackfillStepsCommandIsNotConstructed = errors.New(
		"BackfillStepsCommand must be created via NewBackfillStepsCommand constructor",
	)
)

// BackfillStepsCommand stores generated steps for an order that has none and
// migrates legacy single-step authority records. Step statuses are never
// changed.
type BackfillStepsCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewBackfillStepsCommand(orderID kernel.UUID) (BackfillStepsCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return BackfillStepsCommand{}, err
	}
	return BackfillStepsCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c BackfillStepsCommand) Validate() error {
	return c.guard.Validate(ErrBackfillStepsCommandIsNotConstructed)
}

func (c BackfillStepsCommand) OrderID() kernel.UUID { return c.orderID }
