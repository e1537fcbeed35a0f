package commands

import (
	"context"
)

type UpdateStepMetadataCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateStepMetadataCommandHandler(uowFactory OrderUoWFactory) UpdateStepMetadataCommandHandler {
	return UpdateStepMetadataCommandHandler{uowFactory: uowFactory}
}

func (h UpdateStepMetadataCommandHandler) Handle(ctx context.Context, cmd UpdateStepMetadataCommand) error {
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

	if err = o.UpdateStepMetadata(cmd.StepID(), cmd.Metadata()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
