package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/confirmation"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/pricing"
	"fulfillment/internal/core/domain/model/step"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, confirmReturnLater bool, lines ...pricing.Line) *fulfillment.Order {
	t.Helper()
	o, err := fulfillment.NewOrder(order.Snapshot{
		ID:                        kernel.NewUUID(),
		OrderNumber:               "SWE000900",
		OrderType:                 order.TypeLegalization,
		Services:                  []order.ServiceID{order.ServiceEmbassy},
		PickupService:             true,
		PickupMethod:              "stockholm_courier",
		ReturnService:             "postnord-rek",
		DocumentSource:            order.DocumentsOriginal,
		ConfirmReturnAddressLater: confirmReturnLater,
		PickupAddress:             kernel.Address{Street: "Drottninggatan 7", PostalCode: "111 51", City: "Stockholm"},
		ReturnAddress:             kernel.Address{Street: "Drottninggatan 7", PostalCode: "111 51", City: "Stockholm"},
	}, pricing.Source{Lines: lines})
	require.NoError(t, err)
	return o
}

func send(t *testing.T, o *fulfillment.Order, typ confirmation.Type, p confirmation.Payload) confirmation.Request {
	t.Helper()
	r, err := o.SendConfirmation(typ, p, now, 0)
	require.NoError(t, err)
	return r
}

func TestConfirmationGate_Address(t *testing.T) {
	t.Run("should ignore a pickup confirmation never sent", func(t *testing.T) {
		gate := services.NewConfirmationGate(newOrder(t, false))

		warning, err := gate.CheckCompletion(step.PickupBooking{})

		assert.NoError(t, err)
		assert.Empty(t, warning)
	})

	t.Run("should warn while the pickup address awaits an answer", func(t *testing.T) {
		o := newOrder(t, false)
		send(t, o, confirmation.AddressPickup, confirmation.Payload{})

		warning, err := services.NewConfirmationGate(o).CheckCompletion(step.CourierPickup{})

		assert.NoError(t, err)
		assert.Contains(t, warning, "address_pickup")
	})

	t.Run("should block a declined pickup address", func(t *testing.T) {
		o := newOrder(t, false)
		r := send(t, o, confirmation.AddressPickup, confirmation.Payload{})
		_, err := o.DeclineByCustomer(confirmation.AddressPickup, r.Token, now)
		require.NoError(t, err)

		_, err = services.NewConfirmationGate(o).CheckCompletion(step.PickupBooking{})

		assert.ErrorIs(t, err, services.ErrConfirmationDeclined)
	})

	t.Run("should require the return address when confirmed later", func(t *testing.T) {
		o := newOrder(t, true)
		gate := services.NewConfirmationGate(o)

		_, err := gate.CheckCompletion(step.ReturnShipping{})
		assert.ErrorIs(t, err, services.ErrConfirmationMissing)

		r := send(t, o, confirmation.AddressReturn, confirmation.Payload{})
		_, err = services.NewConfirmationGate(o).CheckCompletion(step.CourierDelivery{})
		assert.ErrorIs(t, err, services.ErrConfirmationMissing)

		_, err = o.ConfirmByCustomer(confirmation.AddressReturn, r.Token, nil, now)
		require.NoError(t, err)
		warning, err := services.NewConfirmationGate(o).CheckCompletion(step.ReturnShipping{})
		assert.NoError(t, err)
		assert.Empty(t, warning)
	})

	t.Run("should not gate unrelated steps", func(t *testing.T) {
		o := newOrder(t, true)
		gate := services.NewConfirmationGate(o)

		for _, k := range []step.Kind{
			step.DocumentReceipt{},
			step.AuthorityPickup{Authority: order.ServiceEmbassy},
			step.AuthorityDelivery{Authority: order.ServiceUD},
			step.Other{Key: "quality_check"},
		} {
			warning, err := gate.CheckCompletion(k)
			assert.NoError(t, err, k.ID())
			assert.Empty(t, warning, k.ID())
		}
	})
}

func TestConfirmationGate_EmbassyPrice(t *testing.T) {
	tbc := pricing.Line{Description: "Embassy fee", Service: pricing.ServiceEmbassyOfficial, IsTBC: true}
	fee := decimal.NewFromInt(900)
	embassyDelivery := step.AuthorityDelivery{Authority: order.ServiceEmbassy}

	t.Run("should block the embassy drop off while the fee is TBC", func(t *testing.T) {
		o := newOrder(t, false, tbc)

		_, err := services.NewConfirmationGate(o).CheckCompletion(embassyDelivery)

		assert.ErrorIs(t, err, services.ErrConfirmationMissing)
	})

	t.Run("should allow the drop off once the fee is confirmed", func(t *testing.T) {
		o := newOrder(t, false, tbc)
		r := send(t, o, confirmation.EmbassyPrice, confirmation.Payload{ProposedPrice: &fee})
		_, err := o.ConfirmByCustomer(confirmation.EmbassyPrice, r.Token, nil, now)
		require.NoError(t, err)

		_, err = services.NewConfirmationGate(o).CheckCompletion(embassyDelivery)

		assert.NoError(t, err)
	})

	t.Run("should not gate when no fee is TBC", func(t *testing.T) {
		o := newOrder(t, false, pricing.Line{Description: "Embassy fee", Service: pricing.ServiceEmbassyOfficial})

		_, err := services.NewConfirmationGate(o).CheckCompletion(embassyDelivery)

		assert.NoError(t, err)
	})

	t.Run("should let the admin override through the state machine", func(t *testing.T) {
		o := newOrder(t, false, tbc)
		change := step.Change{Actor: "admin", At: now, Guard: services.NewConfirmationGate(o)}

		_, err := o.TransitionStep("embassy_delivery", step.Completed, change)
		require.ErrorIs(t, err, step.ErrCompletionBlocked)

		change.Override = true
		warnings, err := o.TransitionStep("embassy_delivery", step.Completed, change)
		require.NoError(t, err)
		assert.Len(t, warnings, 1)
	})
}
