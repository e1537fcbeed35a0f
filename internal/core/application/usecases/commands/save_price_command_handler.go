package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pricing"
)

// SavePriceCommandHandler persists an admin price record. On a validation
// failure nothing is written and the caller keeps its unsaved input.
type SavePriceCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSavePriceCommandHandler(uowFactory OrderUoWFactory) SavePriceCommandHandler {
	return SavePriceCommandHandler{uowFactory: uowFactory}
}

func (h SavePriceCommandHandler) Handle(ctx context.Context, cmd SavePriceCommand) (pricing.Record, error) {
	if err := cmd.Validate(); err != nil {
		return pricing.Record{}, err
	}

	return updatePrice(ctx, h.uowFactory, cmd.OrderID(), func(o *fulfillment.Order) (pricing.Record, error) {
		return o.SavePrice(cmd.Overrides(), cmd.Discount(), cmd.Adjustments(), cmd.Actor(), time.Now())
	})
}

type ResetPriceCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewResetPriceCommandHandler(uowFactory OrderUoWFactory) ResetPriceCommandHandler {
	return ResetPriceCommandHandler{uowFactory: uowFactory}
}

func (h ResetPriceCommandHandler) Handle(ctx context.Context, cmd ResetPriceCommand) (pricing.Record, error) {
	if err := cmd.Validate(); err != nil {
		return pricing.Record{}, err
	}

	return updatePrice(ctx, h.uowFactory, cmd.OrderID(), func(o *fulfillment.Order) (pricing.Record, error) {
		return o.ResetPrice(cmd.Actor(), time.Now())
	})
}

func updatePrice(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	apply func(o *fulfillment.Order) (pricing.Record, error),
) (pricing.Record, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return pricing.Record{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, orderID)
	if err != nil {
		return pricing.Record{}, err
	}

	record, err := apply(o)
	if err != nil {
		return pricing.Record{}, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return pricing.Record{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return pricing.Record{}, err
	}
	return record, nil
}
