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
	ErrTransitionStepCommandIsNotConstructed = errors.New(
		"TransitionStepCommand must be created via NewTransitionStepCommand constructor",
	)
)

// TransitionStepCommand changes the status of one processing step, optionally
// editing its metadata in the same write.
//
// Override lets the admin complete a step whose confirmation the customer has
// declined or not yet given.
//
// Example:
//
//	cmd, err := NewTransitionStepCommand(orderID, "embassy_delivery", step.Completed,
//	    "anna@office.se", step.Metadata{}, false)
//	if err != nil {
//	    return err
//	}
//	warnings, err := handler.Handle(ctx, cmd)
type TransitionStepCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	stepID   string
	status   step.Status
	actor    string
	metadata step.Metadata
	override bool

	guard guard.ConstructorGuard
}

func NewTransitionStepCommand(
	orderID kernel.UUID,
	stepID string,
	status step.Status,
	actor string,
	metadata step.Metadata,
	override bool,
) (TransitionStepCommand, error) {
	cmd := TransitionStepCommand{
		metadata: metadata,
		override: override,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStepID(stepID),
		cmd.setStatus(status),
		cmd.setActor(actor),
	); err != nil {
		return TransitionStepCommand{}, err
	}

	return cmd, nil
}

func (c TransitionStepCommand) Validate() error {
	return c.guard.Validate(ErrTransitionStepCommandIsNotConstructed)
}

func (c TransitionStepCommand) OrderID() kernel.UUID    { return c.orderID }
func (c TransitionStepCommand) StepID() string          { return c.stepID }
func (c TransitionStepCommand) Status() step.Status     { return c.status }
func (c TransitionStepCommand) Actor() string           { return c.actor }
func (c TransitionStepCommand) Metadata() step.Metadata { return c.metadata }
func (c TransitionStepCommand) Override() bool          { return c.override }

func (c *TransitionStepCommand) setOrderID(id kernel.UUID) error {
	if err := validateOrderID(id); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *TransitionStepCommand) setStepID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("stepID")
	}
	c.stepID = strings.TrimSpace(id)
	return nil
}

func (c *TransitionStepCommand) setStatus(s step.Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.status = s
	return nil
}

func (c *TransitionStepCommand) setActor(actor string) error {
	if strings.TrimSpace(actor) == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	c.actor = strings.TrimSpace(actor)
	return nil
}
