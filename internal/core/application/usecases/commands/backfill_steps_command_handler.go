package commands

import (
	"context"
)

type BackfillStepsCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewBackfillStepsCommandHandler(uowFactory OrderUoWFactory) BackfillStepsCommandHandler {
	return BackfillStepsCommandHandler{uowFactory: uowFactory}
}

// Handle reports whether the stored steps changed.
func (h BackfillStepsCommandHandler) Handle(ctx context.Context, cmd BackfillStepsCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}

	if !o.EnsureSteps() {
		return false, nil
	}

	if err = repo.Update(ctx, o); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
