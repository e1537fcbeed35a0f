package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/confirmation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRespondToConfirmationCommandIsNotConstructed = errors.New(
		"RespondToConfirmationCommand must be created via NewRespondToConfirmationCommand constructor",
	)
)

// RespondToConfirmationCommand is the customer's answer to a confirmation
// link. An accepted address confirmation may carry a corrected address.
type RespondToConfirmationCommand struct {
	orderID kernel.UUID
	typ     confirmation.Type
	token   string
	accept  bool
	address *kernel.Address

	guard guard.ConstructorGuard
}

func NewRespondToConfirmationCommand(
	orderID kernel.UUID,
	typ confirmation.Type,
	token string,
	accept bool,
	address *kernel.Address,
) (RespondToConfirmationCommand, error) {
	var err error
	err = errors.Join(err, validateOrderID(orderID), typ.Validate())
	if strings.TrimSpace(token) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("token"))
	}
	if !accept && address != nil {
		err = errors.Join(err, errs.NewValueIsInvalidError("address"))
	}
	if err != nil {
		return RespondToConfirmationCommand{}, err
	}

	return RespondToConfirmationCommand{
		orderID: orderID,
		typ:     typ,
		token:   strings.TrimSpace(token),
		accept:  accept,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RespondToConfirmationCommand) Validate() error {
	return c.guard.Validate(ErrRespondToConfirmationCommandIsNotConstructed)
}

func (c RespondToConfirmationCommand) OrderID() kernel.UUID     { return c.orderID }
func (c RespondToConfirmationCommand) Type() confirmation.Type  { return c.typ }
func (c RespondToConfirmationCommand) Token() string            { return c.token }
func (c RespondToConfirmationCommand) Accept() bool             { return c.accept }
func (c RespondToConfirmationCommand) Address() *kernel.Address { return c.address }
