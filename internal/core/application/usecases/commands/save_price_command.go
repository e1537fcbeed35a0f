package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pricing"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrSavePriceCommandIsNotConstructed = errors.New(
		"SavePriceCommand must be created via NewSavePriceCommand constructor",
	)
	ErrResetPriceCommandIsNotConstructed = errors.New(
		"ResetPriceCommand must be created via NewResetPriceCommand constructor",
	)
)

// SavePriceCommand stores the admin's line overrides, discount and
// adjustments. Line-level checks (known index, quantity, VAT range) happen in
// the pricing record, where the current breakdown is known.
type SavePriceCommand struct {
	orderID     kernel.UUID
	overrides   []pricing.LineOverride
	discount    pricing.Discount
	adjustments []pricing.Adjustment
	actor       string

	guard guard.ConstructorGuard
}

func NewSavePriceCommand(
	orderID kernel.UUID,
	overrides []pricing.LineOverride,
	discount pricing.Discount,
	adjustments []pricing.Adjustment,
	actor string,
) (SavePriceCommand, error) {
	if err := errors.Join(validateOrderID(orderID), validateActor(actor)); err != nil {
		return SavePriceCommand{}, err
	}

	return SavePriceCommand{
		orderID:     orderID,
		overrides:   append([]pricing.LineOverride(nil), overrides...),
		discount:    discount,
		adjustments: append([]pricing.Adjustment(nil), adjustments...),
		actor:       strings.TrimSpace(actor),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c SavePriceCommand) Validate() error {
	return c.guard.Validate(ErrSavePriceCommandIsNotConstructed)
}

func (c SavePriceCommand) OrderID() kernel.UUID              { return c.orderID }
func (c SavePriceCommand) Overrides() []pricing.LineOverride { return c.overrides }
func (c SavePriceCommand) Discount() pricing.Discount        { return c.discount }
func (c SavePriceCommand) Adjustments() []pricing.Adjustment { return c.adjustments }
func (c SavePriceCommand) Actor() string                     { return c.actor }

// ResetPriceCommand drops every admin price edit of an order.
type ResetPriceCommand struct {
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

func NewResetPriceCommand(orderID kernel.UUID, actor string) (ResetPriceCommand, error) {
	if err := errors.Join(validateOrderID(orderID), validateActor(actor)); err != nil {
		return ResetPriceCommand{}, err
	}
	return ResetPriceCommand{
		orderID: orderID,
		actor:   strings.TrimSpace(actor),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ResetPriceCommand) Validate() error {
	return c.guard.Validate(ErrResetPriceCommandIsNotConstructed)
}

func (c ResetPriceCommand) OrderID() kernel.UUID { return c.orderID }
func (c ResetPriceCommand) Actor() string        { return c.actor }

func validateActor(actor string) error {
	if strings.TrimSpace(actor) == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	return nil
}
