package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/pricing"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand registers a placed customer order for fulfillment.
// Processing steps are derived from the snapshot when the order is created.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(snapshot, pricing.Source{Lines: lines})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	snapshot  order.Snapshot
	breakdown pricing.Source

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the snapshot. The breakdown is checked
// against the order type by the aggregate.
func NewCreateOrderCommand(snapshot order.Snapshot, breakdown pricing.Source) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSnapshot(snapshot); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.breakdown = breakdown

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Snapshot() order.Snapshot {
	return c.snapshot
}

func (c CreateOrderCommand) Breakdown() pricing.Source {
	return c.breakdown
}

func (c *CreateOrderCommand) setSnapshot(s order.Snapshot) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.snapshot = s
	return nil
}
