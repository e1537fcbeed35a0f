package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/pkg/errs"
)

// CreateOrderCommandHandler persists a new fulfillment record with its
// generated steps.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the order inside a transaction. An order number that is
// already taken is a conflict carrying the id of the existing order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := fulfillment.NewOrder(cmd.Snapshot(), cmd.Breakdown())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	number := o.Snapshot().OrderNumber
	existing, err := repo.GetByNumber(ctx, number)
	switch {
	case err == nil:
		return errs.NewConflictError("order "+number+" already exists", existing.ID())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	if err = repo.Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
