package shipment_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	t.Run("should accept supported actions", func(t *testing.T) {
		for _, k := range []struct {
			c shipment.Carrier
			d shipment.Direction
		}{
			{shipment.DHL, shipment.Pickup},
			{shipment.DHL, shipment.Return},
			{"PostNord", "return"},
		} {
			_, err := shipment.NewKey(k.c, k.d)
			assert.NoError(t, err)
		}
	})

	t.Run("should reject PostNord pickups", func(t *testing.T) {
		_, err := shipment.NewKey(shipment.PostNord, shipment.Pickup)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestBookings(t *testing.T) {
	now := time.Date(2024, 8, 19, 15, 4, 0, 0, time.UTC)
	key, err := shipment.NewKey(shipment.DHL, shipment.Return)
	require.NoError(t, err)

	t.Run("should record a booking once", func(t *testing.T) {
		var b shipment.Bookings
		require.False(t, b.IsBooked(key))
		require.NoError(t, b.Guard(key))

		booked, err := b.Record(key, shipment.Result{
			TrackingNumber: "JD014600006281230701",
			TrackingURL:    "https://www.dhl.com/se-en/home/tracking.html?tracking-id=JD014600006281230701",
			Label:          []byte("%PDF-1.4"),
		}, now)

		require.NoError(t, err)
		assert.True(t, booked.IsBooked(key))
		assert.Equal(t, now, *booked.Get(key).BookedAt)
		assert.Nil(t, b, "input must not change")
	})

	t.Run("should surface the existing booking on conflict", func(t *testing.T) {
		booked, err := shipment.Bookings{}.Record(key, shipment.Result{TrackingNumber: "123"}, now)
		require.NoError(t, err)

		err = booked.Guard(key)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
		var conflict *errs.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "123", conflict.Existing.(shipment.Booking).TrackingNumber)

		_, err = booked.Record(key, shipment.Result{TrackingNumber: "456"}, now)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should keep directions apart", func(t *testing.T) {
		pickup, _ := shipment.NewKey(shipment.DHL, shipment.Pickup)
		booked, err := shipment.Bookings{}.Record(pickup, shipment.Result{TrackingNumber: "1"}, now)
		require.NoError(t, err)

		assert.NoError(t, booked.Guard(key))
	})

	t.Run("should require a tracking number", func(t *testing.T) {
		_, err := shipment.Bookings{}.Record(key, shipment.Result{}, now)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should persist keyed by action name", func(t *testing.T) {
		booked, err := shipment.Bookings{}.Record(key, shipment.Result{TrackingNumber: "77"}, now)
		require.NoError(t, err)

		raw, err := json.Marshal(booked)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"dhl_return"`)

		var back shipment.Bookings
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.True(t, back.IsBooked(key))
	})
}
