package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/emailrepo"
	"fulfillment/internal/adapters/out/postgres/noterepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/pricing"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work against a real
// PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &noterepo.NoteDTO{}, &emailrepo.CustomerEmailDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_notes, customer_emails").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(number string) *fulfillment.Order {
	total := decimal.NewFromInt(1200)
	o, err := fulfillment.NewOrder(order.Snapshot{
		ID:             kernel.NewUUID(),
		OrderNumber:    number,
		OrderType:      order.TypeLegalization,
		Services:       []order.ServiceID{order.ServiceApostille},
		ReturnService:  "postnord-rek",
		DocumentSource: order.DocumentsOriginal,
		ReturnAddress:  kernel.Address{Street: "Storgatan 9", PostalCode: "411 38", City: "Göteborg"},
		CustomerEmail:  "kund@example.se",
	}, pricing.Source{Lines: []pricing.Line{{Description: "Apostille", Service: "apostille", Total: &total}}})
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) count(table string) int64 {
	var n int64
	suite.Require().NoError(suite.db.Table(table).Count(&n).Error)
	return n
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrderAndEmailTogether() {
	ctx := context.Background()
	o := suite.newOrder("SWE000101")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Notifier().Notify(ctx, ports.Notification{
		OrderID:     o.ID(),
		OrderNumber: "SWE000101",
		Kind:        ports.NotifyShipmentBooked,
		Recipient:   "kund@example.se",
		Data:        map[string]string{"trackingNumber": "RR123456785SE"},
	}))

	// nothing visible outside the transaction yet
	suite.Equal(int64(0), suite.count("orders"))

	suite.Require().NoError(uow.Commit(ctx))
	suite.Equal(int64(1), suite.count("orders"))
	suite.Equal(int64(1), suite.count("customer_emails"))

	var email emailrepo.CustomerEmailDTO
	suite.Require().NoError(suite.db.First(&email).Error)
	suite.Equal("RR123456785SE", email.Data["trackingNumber"])
	suite.Nil(email.SentAt)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrderAndEmail() {
	ctx := context.Background()
	o := suite.newOrder("SWE000102")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Notifier().Notify(ctx, ports.Notification{
		OrderID: o.ID(), Kind: ports.NotifyAddressConfirmation, Recipient: "kund@example.se",
	}))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(int64(0), suite.count("orders"))
	suite.Equal(int64(0), suite.count("customer_emails"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_AfterCommitIsNoop() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder("SWE000103")))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Rollback(ctx))
	suite.Equal(int64(1), suite.count("orders"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin() {
	uow := suite.factory.Create()
	suite.ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestNotes_AppendAndList() {
	ctx := context.Background()
	o := suite.newOrder("SWE000104")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	first, err := order.NewNote(o.ID(), order.NoteCustomer, "Customer called about the return", "anna", time.Now().Add(-time.Hour))
	suite.Require().NoError(err)
	second, err := order.NewNote(o.ID(), order.NoteIssue, "Embassy rejected the translation", "erik", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.NoteRepository().Append(ctx, first))
	suite.Require().NoError(uow.NoteRepository().Append(ctx, second))
	suite.Require().NoError(uow.Commit(ctx))

	notes, err := suite.factory.Create().NoteRepository().List(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(notes, 2)
	suite.Equal(second.ID, notes[0].ID)
	suite.Equal(order.NoteIssue, notes[0].Type)
	suite.Equal("anna", notes[1].CreatedBy)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTrackedAggregates() {
	ctx := context.Background()
	o := suite.newOrder("SWE000105")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))

	gormUoW, ok := uow.(*postgres_adapter.GormUnitOfWork)
	suite.Require().True(ok)
	suite.Equal([]kernel.UUID{o.ID(), o.ID()}, gormUoW.TrackedIDs())

	suite.Require().NoError(uow.Rollback(ctx))
	suite.Empty(gormUoW.TrackedIDs())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUpdate_UnknownOrder() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	err := uow.OrderRepository().Update(ctx, suite.newOrder("SWE000106"))
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGet_LocksOrderUntilCommit() {
	ctx := context.Background()
	o := suite.newOrder("SWE000107")
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	admin := suite.factory.Create()
	suite.Require().NoError(admin.Begin(ctx))
	defer func() { _ = admin.Rollback(ctx) }()
	locked, err := admin.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	type result struct {
		order *fulfillment.Order
		err   error
	}
	done := make(chan result, 1)
	go func() {
		job := suite.factory.Create()
		if err := job.Begin(ctx); err != nil {
			done <- result{err: err}
			return
		}
		defer func() { _ = job.Rollback(ctx) }()
		got, err := job.OrderRepository().Get(ctx, o.ID())
		done <- result{order: got, err: err}
	}()

	select {
	case <-done:
		suite.Fail("order was read while another transaction held it")
	case <-time.After(300 * time.Millisecond):
	}

	key := shipment.Key{Carrier: shipment.PostNord, Direction: shipment.Return}
	suite.Require().NoError(locked.RecordBooking(key, shipment.Result{TrackingNumber: "RR123456785SE"}, time.Now()))
	suite.Require().NoError(admin.OrderRepository().Update(ctx, locked))
	suite.Require().NoError(admin.Commit(ctx))

	select {
	case r := <-done:
		suite.Require().NoError(r.err)
		suite.True(r.order.IsBooked(key))
	case <-time.After(5 * time.Second):
		suite.Fail("order lock was never released")
	}
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
