package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/pricing"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *fulfillment.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *fulfillment.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*fulfillment.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*fulfillment.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*fulfillment.Order, error) {
	args := m.Called(ctx, orderNumber)
	return args.Get(0).(*fulfillment.Order), args.Error(1)
}

func (m *MockOrderRepository) ListNeedingSteps(ctx context.Context, limit int) ([]kernel.UUID, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockNoteRepository struct{ mock.Mock }

func (m *MockNoteRepository) Append(ctx context.Context, note order.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) List(ctx context.Context, orderID kernel.UUID) ([]order.Note, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]order.Note), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockCarrierBooker struct{ mock.Mock }

func (m *MockCarrierBooker) Book(ctx context.Context, req ports.BookingRequest) (shipment.Result, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(shipment.Result), args.Error(1)
}

// tx is embedded by every unit of work mock.
type tx struct{ mock.Mock }

func (m *tx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *tx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *tx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *tx) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *tx) NoteRepository() ports.NoteRepository {
	args := m.Called()
	return args.Get(0).(ports.NoteRepository)
}

func (m *tx) Notifier() ports.Notifier {
	args := m.Called()
	return args.Get(0).(ports.Notifier)
}

type MockOrderUoW struct{ tx }

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockNoteUoW struct{ tx }

type MockNoteUoWFactory struct{ mock.Mock }

func (m *MockNoteUoWFactory) Create() commands.NoteUoW {
	args := m.Called()
	return args.Get(0).(commands.NoteUoW)
}

type MockNotifyingUoW struct{ tx }

type MockNotifyingUoWFactory struct{ mock.Mock }

func (m *MockNotifyingUoWFactory) Create() commands.NotifyingUoW {
	args := m.Called()
	return args.Get(0).(commands.NotifyingUoW)
}

var fixedNow = time.Date(2024, 10, 7, 9, 30, 0, 0, time.UTC)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testSnapshot() order.Snapshot {
	return order.Snapshot{
		ID:             kernel.NewUUID(),
		OrderNumber:    "SWE001234",
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

func testBreakdown() pricing.Source {
	return pricing.Source{Lines: []pricing.Line{
		{Description: "Chamber legalization", Service: "chamber", UnitPrice: dec("400"), Quantity: 2},
		{Description: "Embassy service", Service: "embassy_service", Total: dec("1100")},
		{Description: "Embassy official fee", Service: pricing.ServiceEmbassyOfficial, IsTBC: true},
	}}
}

func testOrder(t *testing.T) *fulfillment.Order {
	t.Helper()
	o, err := fulfillment.NewOrder(testSnapshot(), testBreakdown())
	require.NoError(t, err)
	return o
}

func fulfillmentOrder(s order.Snapshot) (*fulfillment.Order, error) {
	return fulfillment.NewOrder(s, testBreakdown())
}
