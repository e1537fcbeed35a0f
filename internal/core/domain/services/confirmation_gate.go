package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/confirmation"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/pricing"
	"fulfillment/internal/core/domain/model/step"
)

var (
	// ErrConfirmationDeclined blocks completion of a step whose confirmation
	// the customer declined.
	ErrConfirmationDeclined = errors.New("customer declined the confirmation")

	// ErrConfirmationMissing blocks completion of a step that needs a
	// confirmation the customer has not given yet.
	ErrConfirmationMissing = errors.New("confirmation is required before completion")
)

// ConfirmationGate decides whether a step may be completed given the order's
// confirmation requests.
//
// Business rules:
//   - pickup_booking and the courier pickup depend on the pickup address
//     confirmation; the return steps depend on the return address confirmation;
//     the embassy drop off depends on the embassy price confirmation
//   - a declined confirmation always blocks
//   - a confirmation is required (blocks until confirmed) when the order
//     cannot proceed without it: the return address when the customer chose to
//     confirm it later, the embassy price while the breakdown has a TBC line
//   - otherwise a confirmation still awaiting an answer only warns, and one
//     never sent is ignored
//
// Blocks can be overridden by the admin through step.Change.Override.
type ConfirmationGate struct {
	snapshot      order.Snapshot
	confirmations confirmation.Set
	breakdown     pricing.Breakdown
}

var _ step.CompletionGuard = ConfirmationGate{}

// NewConfirmationGate reads the current state of o.
func NewConfirmationGate(o *fulfillment.Order) ConfirmationGate {
	return ConfirmationGate{
		snapshot:      o.Snapshot(),
		confirmations: o.Confirmations(),
		breakdown:     o.Breakdown(),
	}
}

// CheckCompletion implements step.CompletionGuard.
func (g ConfirmationGate) CheckCompletion(k step.Kind) (string, error) {
	t, required, ok := g.dependency(k)
	if !ok {
		return "", nil
	}

	switch g.confirmations.Get(t).Status {
	case confirmation.StatusConfirmed:
		return "", nil
	case confirmation.StatusDeclined:
		return "", fmt.Errorf("%w: %s", ErrConfirmationDeclined, t)
	case confirmation.StatusSent:
		if required {
			return "", fmt.Errorf("%w: %s awaiting customer", ErrConfirmationMissing, t)
		}
		return fmt.Sprintf("%s sent but not yet answered by the customer", t), nil
	default:
		if required {
			return "", fmt.Errorf("%w: %s not sent", ErrConfirmationMissing, t)
		}
		return "", nil
	}
}

func (g ConfirmationGate) dependency(k step.Kind) (confirmation.Type, bool, bool) {
	switch k := k.(type) {
	case step.PickupBooking, step.CourierPickup:
		return confirmation.AddressPickup, false, g.snapshot.PickupService
	case step.ReturnShipping, step.CourierDelivery:
		return confirmation.AddressReturn, g.snapshot.ConfirmReturnAddressLater, true
	case step.AuthorityDelivery:
		if k.Authority != order.ServiceEmbassy {
			return "", false, false
		}
		return confirmation.EmbassyPrice, pricing.HasTBC(g.breakdown), true
	}
	return "", false, false
}
