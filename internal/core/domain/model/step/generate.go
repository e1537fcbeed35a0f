package step

import (
	"fulfillment/internal/core/domain/model/order"
)

// Generate derives the processing steps for an order. All steps start
// Pending. The sequence is:
//
//  1. document_receipt, unless the customer only uploaded scans
//  2. pickup_booking when pickup was requested, followed by the courier pickup
//     step when the pickup method is the city courier
//  3. <authority>_delivery and <authority>_pickup for every selected authority,
//     in catalog order
//  4. return_shipping, followed by the courier delivery step when the return
//     goes by city courier
//
// The output depends on nothing but s.
func Generate(s order.Snapshot) []Step {
	var kinds []Kind
	if !s.DocumentsUploaded() {
		kinds = append(kinds, DocumentReceipt{})
	}
	if s.PickupService {
		kinds = append(kinds, PickupBooking{})
		if s.UsesCourierPickup() {
			kinds = append(kinds, CourierPickup{})
		}
	}
	for _, a := range s.SelectedAuthorities() {
		kinds = append(kinds, AuthorityDelivery{Authority: a}, AuthorityPickup{Authority: a})
	}
	kinds = append(kinds, ReturnShipping{})
	if s.UsesCourierReturn() {
		kinds = append(kinds, CourierDelivery{})
	}

	steps := make([]Step, 0, len(kinds))
	for _, k := range kinds {
		name, desc := describe(k, s)
		st := newStep(k, name, desc)
		if _, ok := k.(CourierPickup); ok {
			st.submittedAt = cloneTime(s.PickupDate)
			st.expectedCompletionDate = cloneTime(s.PickupDate)
		}
		steps = append(steps, st)
	}
	return steps
}

// MigrateLegacy upgrades single-step authority records. For every completed
// legacy step whose authority has no pickup step yet, a pending
// <authority>_pickup step is inserted right after it, dated with the legacy
// step's expected completion date as both submittedAt and
// expectedCompletionDate. The bool reports whether anything was added.
func MigrateLegacy(steps []Step) ([]Step, bool) {
	hasPickup := make(map[order.ServiceID]bool)
	for _, s := range steps {
		if k, ok := s.kind.(AuthorityPickup); ok {
			hasPickup[k.Authority] = true
		}
	}

	out := make([]Step, 0, len(steps))
	changed := false
	for _, s := range steps {
		out = append(out, s)

		legacy, ok := s.kind.(Legacy)
		if !ok || s.status != Completed || hasPickup[legacy.Authority] {
			continue
		}

		k := AuthorityPickup{Authority: legacy.Authority}
		name, desc := describe(k, order.Snapshot{})
		pickup := newStep(k, name, desc)
		pickup.submittedAt = cloneTime(s.expectedCompletionDate)
		pickup.expectedCompletionDate = cloneTime(s.expectedCompletionDate)

		out = append(out, pickup)
		hasPickup[legacy.Authority] = true
		changed = true
	}
	if !changed {
		return steps, false
	}
	return out, true
}

// Ensure returns the steps to show for an order: the stored list upgraded by
// MigrateLegacy, or a freshly generated list when nothing is stored yet.
func Ensure(stored []Step, s order.Snapshot) ([]Step, bool) {
	if len(stored) == 0 {
		return Generate(s), true
	}
	return MigrateLegacy(stored)
}
