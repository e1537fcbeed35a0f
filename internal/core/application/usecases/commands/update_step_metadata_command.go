package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/step"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrUpdateStepMetadataCommandIsNotConstructed = errors.New(
		"UpdateStepMetadataCommand must be created via NewUpdateStepMetadataCommand constructor",
	)
)

// UpdateStepMetadataCommand edits the dates or notes of a step without
// changing its status.
type UpdateStepMetadataCommand struct {
	orderID  kernel.UUID
	stepID   string
	metadata step.Metadata

	guard guard.ConstructorGuard
}

func NewUpdateStepMetadataCommand(orderID kernel.UUID, stepID string, m step.Metadata) (UpdateStepMetadataCommand, error) {
	var err error
	if verr := validateOrderID(orderID); verr != nil {
		err = errors.Join(err, verr)
	}
	if strings.TrimSpace(stepID) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("stepID"))
	}
	if m.SubmittedAt == nil && m.ExpectedCompletionDate == nil && m.Notes == nil {
		err = errors.Join(err, errs.NewValueIsRequiredError("metadata"))
	}
	if err != nil {
		return UpdateStepMetadataCommand{}, err
	}

	return UpdateStepMetadataCommand{
		orderID:  orderID,
		stepID:   strings.TrimSpace(stepID),
		metadata: m,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateStepMetadataCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStepMetadataCommandIsNotConstructed)
}

func (c UpdateStepMetadataCommand) OrderID() kernel.UUID    { return c.orderID }
func (c UpdateStepMetadataCommand) StepID() string          { return c.stepID }
func (c UpdateStepMetadataCommand) Metadata() step.Metadata { return c.metadata }
