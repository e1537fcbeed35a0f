package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRegenerateStepsCommandIsNotConstructed = errors.New(
		"RegenerateStepsCommand must be created via NewRegenerateStepsCommand constructor",
	)
)

// RegenerateStepsCommand replaces an order's steps with a fresh derivation.
// Every step goes back to pending.
type RegenerateStepsCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRegenerateStepsCommand(orderID kernel.UUID) (RegenerateStepsCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return RegenerateStepsCommand{}, err
	}
	return RegenerateStepsCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c RegenerateStepsCommand) Validate() error {
	return c.guard.Validate(ErrRegenerateStepsCommandIsNotConstructed)
}

func (c RegenerateStepsCommand) OrderID() kernel.UUID {
	return c.orderID
}
