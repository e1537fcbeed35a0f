package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrBookShipmentCommandIsNotConstructed = errors.New(
		"BookShipmentCommand must be created via NewBookShipmentCommand constructor",
	)
)

// BookShipmentCommand books a carrier action for an order: a DHL pickup
// label, a DHL return shipment or a PostNord REK return.
type BookShipmentCommand struct {
	orderID kernel.UUID
	key     shipment.Key

	guard guard.ConstructorGuard
}

func NewBookShipmentCommand(orderID kernel.UUID, carrier shipment.Carrier, direction shipment.Direction) (BookShipmentCommand, error) {
	key, kerr := shipment.NewKey(carrier, direction)
	if err := errors.Join(validateOrderID(orderID), kerr); err != nil {
		return BookShipmentCommand{}, err
	}

	return BookShipmentCommand{
		orderID: orderID,
		key:     key,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c BookShipmentCommand) Validate() error {
	return c.guard.Validate(ErrBookShipmentCommandIsNotConstructed)
}

func (c BookShipmentCommand) OrderID() kernel.UUID { return c.orderID }
func (c BookShipmentCommand) Key() shipment.Key    { return c.key }
