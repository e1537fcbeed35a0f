package queries_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct {
	mock.Mock
}

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*fulfillment.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.Order), args.Error(1)
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testSnapshot(number string) order.Snapshot {
	return order.Snapshot{
		ID:             kernel.NewUUID(),
		OrderNumber:    number,
		OrderType:      order.TypeLegalization,
		Services:       []order.ServiceID{order.ServiceChamber, order.ServiceEmbassy},
		PickupService:  true,
		PickupMethod:   "dhl",
		ReturnService:  "dhl-sweden",
		DocumentSource: order.DocumentsOriginal,
		Country:        "EG",
		PickupAddress:  kernel.Address{Street: "Kungsgatan 1", PostalCode: "111 43", City: "Stockholm"},
		ReturnAddress:  kernel.Address{Street: "Storgatan 9", PostalCode: "411 38", City: "Göteborg"},
		CustomerEmail:  "kund@example.se",
		Locale:         "sv",
	}
}

// testBreakdown totals 1900 with the embassy fee still unknown.
func testBreakdown() pricing.Source {
	return pricing.Source{Lines: []pricing.Line{
		{Description: "Chamber legalization", Service: "chamber", UnitPrice: dec("400"), Quantity: 2},
		{Description: "Embassy service", Service: "embassy_service", Total: dec("1100")},
		{Description: "Embassy official fee", Service: pricing.ServiceEmbassyOfficial, IsTBC: true},
	}}
}

func testOrder(t *testing.T, number string) *fulfillment.Order {
	t.Helper()
	o, err := fulfillment.NewOrder(testSnapshot(number), testBreakdown())
	require.NoError(t, err)
	return o
}
