package commands

import (
	"context"
)

type RegenerateStepsCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRegenerateStepsCommandHandler(uowFactory OrderUoWFactory) RegenerateStepsCommandHandler {
	return RegenerateStepsCommandHandler{uowFactory: uowFactory}
}

func (h RegenerateStepsCommandHandler) Handle(ctx context.Context, cmd RegenerateStepsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	o.RegenerateSteps()

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
