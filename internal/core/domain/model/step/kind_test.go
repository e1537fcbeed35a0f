package step_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/step"

	"github.com/stretchr/testify/assert"
)

func TestKindFromID(t *testing.T) {
	tests := []struct {
		id   string
		want step.Kind
	}{
		{"document_receipt", step.DocumentReceipt{}},
		{"pickup_booking", step.PickupBooking{}},
		{"stockholm_courier_pickup", step.CourierPickup{}},
		{"stockholm_courier_delivery", step.CourierDelivery{}},
		{"return_shipping", step.ReturnShipping{}},
		{"ud_delivery", step.AuthorityDelivery{Authority: order.ServiceUD}},
		{"embassy_pickup", step.AuthorityPickup{Authority: order.ServiceEmbassy}},
		{"chamber_processing", step.Legacy{Authority: order.ServiceChamber, Key: "chamber_processing"}},
		{"notarization", step.Legacy{Authority: order.ServiceNotarization, Key: "notarization"}},
		{"scanning_pickup", step.Other{Key: "scanning_pickup"}},
		{"quality_check", step.Other{Key: "quality_check"}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			k := step.KindFromID(tt.id)

			assert.Equal(t, tt.want, k)
			assert.Equal(t, tt.id, k.ID())
		})
	}
}

func TestEditableFields(t *testing.T) {
	delivery := step.EditableFields(step.AuthorityDelivery{Authority: order.ServiceApostille})
	assert.True(t, delivery.Has(step.FieldSubmittedAt))
	assert.False(t, delivery.Has(step.FieldExpectedCompletionDate))

	pickup := step.EditableFields(step.AuthorityPickup{Authority: order.ServiceApostille})
	assert.False(t, pickup.Has(step.FieldSubmittedAt))
	assert.True(t, pickup.Has(step.FieldExpectedCompletionDate))

	courier := step.EditableFields(step.CourierPickup{})
	assert.True(t, courier.Has(step.FieldSubmittedAt|step.FieldExpectedCompletionDate|step.FieldNotes))

	legacy := step.EditableFields(step.Legacy{Authority: order.ServiceUD, Key: "ud_processing"})
	assert.True(t, legacy.Has(step.FieldSubmittedAt|step.FieldExpectedCompletionDate))
}
