package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/noterepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/step"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ReadModelQueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orderRepo *orderrepo.GormOrderRepository
	noteRepo  *noterepo.GormNoteRepository
}

func (suite *ReadModelQueriesTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &noterepo.NoteDTO{}))

	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &noopTracker{})
	suite.noteRepo = noterepo.NewGormNoteRepository(db)
}

func (suite *ReadModelQueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ReadModelQueriesTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_notes").Error)
}

func (suite *ReadModelQueriesTestSuite) addOrder(number string, finish int) *fulfillment.Order {
	o := testOrder(suite.T(), number)
	for _, s := range o.Steps()[:finish] {
		_, err := o.TransitionStep(s.ID(), step.Skipped, step.Change{Actor: "admin@example.se", At: time.Now()})
		suite.Require().NoError(err)
	}
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func (suite *ReadModelQueriesTestSuite) TestOpenOrders_EmptyDatabase_ReturnsEmptySlice() {
	result, err := queries.NewGetOpenOrdersQueryHandler(suite.db).Handle(context.Background(), queries.NewGetOpenOrdersQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ReadModelQueriesTestSuite) TestOpenOrders_SkipsFinishedOrders() {
	partial := suite.addOrder("SWE000401", 3)
	suite.addOrder("SWE000402", 7)

	result, err := queries.NewGetOpenOrdersQueryHandler(suite.db).Handle(context.Background(), queries.NewGetOpenOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(partial.ID()))
	suite.Equal("SWE000401", result[0].OrderNumber)
	suite.Equal("legalization", result[0].OrderType)
	suite.Equal("EG", result[0].Country)
	suite.Equal(3, result[0].FinishedSteps)
	suite.Equal(7, result[0].TotalSteps)
	suite.True(result[0].TotalPrice.Equal(partial.TotalPrice()))
}

func (suite *ReadModelQueriesTestSuite) TestOpenOrders_IncludesOrdersWithoutSteps() {
	o := suite.addOrder("SWE000403", 7)
	suite.Require().NoError(suite.db.Exec("UPDATE orders SET steps = NULL WHERE id = ?", o.ID().Bytes()).Error)

	result, err := queries.NewGetOpenOrdersQueryHandler(suite.db).Handle(context.Background(), queries.NewGetOpenOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(0, result[0].TotalSteps)
}

func (suite *ReadModelQueriesTestSuite) TestOrderNotes_NewestFirst() {
	o := suite.addOrder("SWE000404", 0)
	other := suite.addOrder("SWE000405", 0)
	base := time.Date(2024, 10, 7, 9, 0, 0, 0, time.UTC)

	for i, content := range []string{"Called customer", "Embassy closed until Monday"} {
		n, err := order.NewNote(o.ID(), order.NoteGeneral, content, "admin@example.se", base.Add(time.Duration(i)*time.Hour))
		suite.Require().NoError(err)
		suite.Require().NoError(suite.noteRepo.Append(context.Background(), n))
	}
	n, err := order.NewNote(other.ID(), order.NoteGeneral, "Unrelated", "admin@example.se", base)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.noteRepo.Append(context.Background(), n))

	query, err := queries.NewGetOrderNotesQuery(o.ID())
	suite.Require().NoError(err)

	result, err := queries.NewGetOrderNotesQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("Embassy closed until Monday", result[0].Content)
	suite.Equal("Called customer", result[1].Content)
	suite.Equal("general", result[0].Type)
}

func TestReadModelQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(ReadModelQueriesTestSuite))
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}
