package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/confirmation"
)

type RespondToConfirmationCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

func NewRespondToConfirmationCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) RespondToConfirmationCommandHandler {
	return RespondToConfirmationCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "RespondToConfirmationCommandHandler"),
	}
}

func (h RespondToConfirmationCommandHandler) Handle(
	ctx context.Context,
	cmd RespondToConfirmationCommand,
) (confirmation.Request, error) {
	if err := cmd.Validate(); err != nil {
		return confirmation.Request{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return confirmation.Request{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return confirmation.Request{}, err
	}

	var req confirmation.Request
	if cmd.Accept() {
		req, err = o.ConfirmByCustomer(cmd.Type(), cmd.Token(), cmd.Address(), time.Now())
	} else {
		req, err = o.DeclineByCustomer(cmd.Type(), cmd.Token(), time.Now())
	}
	if err != nil {
		return confirmation.Request{}, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return confirmation.Request{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return confirmation.Request{}, err
	}

	h.logger.InfoContext(ctx, "customer answered confirmation",
		"order_id", o.ID().String(),
		"type", string(req.Type),
		"status", string(req.Status),
		"address_updated", req.AddressUpdatedByCustomer,
	)
	return req, nil
}
