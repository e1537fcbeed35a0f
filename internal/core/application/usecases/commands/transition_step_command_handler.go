package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/step"
	"fulfillment/internal/core/domain/services"
)

// TransitionStepCommandHandler applies a status change through the step state
// machine, guarded by the order's confirmations.
type TransitionStepCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

func NewTransitionStepCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) TransitionStepCommandHandler {
	return TransitionStepCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "TransitionStepCommandHandler"),
	}
}

// Handle returns the guard's warnings when the transition went through.
func (h TransitionStepCommandHandler) Handle(ctx context.Context, cmd TransitionStepCommand) ([]string, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	warnings, err := o.TransitionStep(cmd.StepID(), cmd.Status(), step.Change{
		Actor:    cmd.Actor(),
		At:       time.Now(),
		Metadata: cmd.Metadata(),
		Guard:    services.NewConfirmationGate(o),
		Override: cmd.Override(),
	})
	if err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if len(warnings) > 0 {
		h.logger.InfoContext(ctx, "step transitioned with warnings",
			"order_id", cmd.OrderID().String(),
			"step_id", cmd.StepID(),
			"status", cmd.Status().String(),
			"override", cmd.Override(),
			"warnings", warnings,
		)
	}
	return warnings, nil
}
