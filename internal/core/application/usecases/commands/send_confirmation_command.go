package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/confirmation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrSendConfirmationCommandIsNotConstructed = errors.New(
		"SendConfirmationCommand must be created via NewSendConfirmationCommand constructor",
	)
)

// SendConfirmationCommand asks the customer to confirm an address or an
// embassy fee. Sending again replaces the pending request and its link.
//
// Address confirmations may leave Payload.Address empty: the address on the
// order is then sent. Embassy price confirmations require a proposed price.
type SendConfirmationCommand struct {
	orderID kernel.UUID
	typ     confirmation.Type
	payload confirmation.Payload

	guard guard.ConstructorGuard
}

func NewSendConfirmationCommand(
	orderID kernel.UUID,
	typ confirmation.Type,
	payload confirmation.Payload,
) (SendConfirmationCommand, error) {
	if err := errors.Join(validateOrderID(orderID), typ.Validate()); err != nil {
		return SendConfirmationCommand{}, err
	}

	return SendConfirmationCommand{
		orderID: orderID,
		typ:     typ,
		payload: payload,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SendConfirmationCommand) Validate() error {
	return c.guard.Validate(ErrSendConfirmationCommandIsNotConstructed)
}

func (c SendConfirmationCommand) OrderID() kernel.UUID          { return c.orderID }
func (c SendConfirmationCommand) Type() confirmation.Type       { return c.typ }
func (c SendConfirmationCommand) Payload() confirmation.Payload { return c.payload }
