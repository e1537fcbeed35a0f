package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSnapshot() order.Snapshot {
	return order.Snapshot{
		ID:             kernel.NewUUID(),
		OrderNumber:    "SWE000123",
		OrderType:      order.TypeLegalization,
		Services:       []order.ServiceID{order.ServiceEmbassy, order.ServiceNotarization},
		DocumentSource: order.DocumentsOriginal,
	}
}

func TestSnapshot_Validate(t *testing.T) {
	t.Run("should accept a complete snapshot", func(t *testing.T) {
		require.NoError(t, validSnapshot().Validate())
	})

	t.Run("should join every missing field", func(t *testing.T) {
		err := order.Snapshot{}.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "orderNumber")
		assert.Contains(t, err.Error(), "orderType")
		assert.Contains(t, err.Error(), "documentSource")
	})

	t.Run("should reject unknown services", func(t *testing.T) {
		s := validSnapshot()
		s.Services = append(s.Services, order.ServiceID("teleportation"))

		err := s.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "services")
	})
}

func TestSnapshot_SelectedAuthorities(t *testing.T) {
	s := validSnapshot()
	s.Services = []order.ServiceID{
		order.ServiceEmbassy,
		order.ServiceExpress,
		order.ServiceUD,
		order.ServiceNotarization,
	}

	assert.Equal(t,
		[]order.ServiceID{order.ServiceNotarization, order.ServiceUD, order.ServiceEmbassy},
		s.SelectedAuthorities())
}

func TestSnapshot_Courier(t *testing.T) {
	tests := []struct {
		name          string
		pickupService bool
		pickupMethod  string
		returnService string
		wantPickup    bool
		wantReturn    bool
	}{
		{"dhl everywhere", true, "dhl", "dhl-sweden", false, false},
		{"courier pickup", true, "stockholm_courier", "postnord-rek", true, false},
		{"courier method without pickup", false, "stockholm_sameday", "", false, false},
		{"courier return", false, "", "stockholm-express", false, true},
		{"mixed case", true, "Stockholm_Courier", "Stockholm-City", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot()
			s.PickupService = tt.pickupService
			s.PickupMethod = tt.pickupMethod
			s.ReturnService = tt.returnService

			assert.Equal(t, tt.wantPickup, s.UsesCourierPickup())
			assert.Equal(t, tt.wantReturn, s.UsesCourierReturn())
		})
	}
}

func TestParseServiceID(t *testing.T) {
	t.Run("should normalise known ids", func(t *testing.T) {
		id, err := order.ParseServiceID(" Apostille ")

		require.NoError(t, err)
		assert.Equal(t, order.ServiceApostille, id)
		assert.True(t, id.IsAuthority())
	})

	t.Run("should reject unknown ids", func(t *testing.T) {
		_, err := order.ParseServiceID("visa_magic")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("non-authority services", func(t *testing.T) {
		assert.False(t, order.ServiceScannedCopies.IsAuthority())
		assert.False(t, order.ServiceExpress.IsAuthority())
	})
}
