package queries_test

import (
	"context"
	"testing"
	"time"

	"coffeeshop/internal/adapters/out/postgres/orderrepo"
	"coffeeshop/internal/core/application/usecases/queries"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker implements the tracker interface for test purposes.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

func espressoItems() []order.Item {
	return []order.Item{
		{
			ProductID:   kernel.NewUUID(),
			ProductName: "Espresso",
			Size:        "small",
			SugarLevel:  "none",
			UnitPrice:   3.20,
			Quantity:    1,
			Subtotal:    3.20,
			Preparation: 3 * time.Minute,
		},
	}
}

type GetAwaitingPickupOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAwaitingPickupOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetAwaitingPickupOrdersQueryHandlerTestSuite) SetupSuite() {
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

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetAwaitingPickupOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetAwaitingPickupOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetAwaitingPickupOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetAwaitingPickupOrdersQueryHandlerTestSuite) placeOrder(customer string, createdAt time.Time) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), customer, espressoItems(), 3.20, createdAt)
	suite.Require().NoError(err)
	err = o.AwaitPickup()
	suite.Require().NoError(err)
	err = suite.orderRepo.Add(context.Background(), o)
	suite.Require().NoError(err)
	return o
}

func (suite *GetAwaitingPickupOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetAwaitingPickupOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAwaitingPickupOrdersQueryHandlerTestSuite) TestHandle_WithMixedStatuses_ReturnsOnlyAwaitingPickup() {
	now := time.Now()

	waiting1 := suite.placeOrder("user-1", now)
	waiting2 := suite.placeOrder("user-2", now)

	completed := suite.placeOrder("user-3", now)
	suite.Require().NoError(completed.Complete())
	suite.Require().NoError(suite.orderRepo.Update(context.Background(), completed))

	cancelled := suite.placeOrder("user-4", now)
	suite.Require().NoError(cancelled.Cancel())
	suite.Require().NoError(suite.orderRepo.Update(context.Background(), cancelled))

	query := queries.NewGetAwaitingPickupOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 2)

	resultIDs := make(map[kernel.UUID]bool)
	for _, r := range result {
		resultIDs[r.ID] = true
	}
	suite.True(resultIDs[waiting1.ID()])
	suite.True(resultIDs[waiting2.ID()])
	suite.False(resultIDs[completed.ID()])
	suite.False(resultIDs[cancelled.ID()])
}

func (suite *GetAwaitingPickupOrdersQueryHandlerTestSuite) TestHandle_ReturnsOldestFirst() {
	base := time.Now().Add(-time.Hour)

	newest := suite.placeOrder("user-1", base.Add(20*time.Minute))
	oldest := suite.placeOrder("user-2", base)
	middle := suite.placeOrder("user-3", base.Add(10*time.Minute))

	query := queries.NewGetAwaitingPickupOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.True(result[0].ID.IsEqual(oldest.ID()))
	suite.True(result[1].ID.IsEqual(middle.ID()))
	suite.True(result[2].ID.IsEqual(newest.ID()))
}

func (suite *GetAwaitingPickupOrdersQueryHandlerTestSuite) TestHandle_MapsColumns() {
	o := suite.placeOrder("user-9", time.Now())

	query := queries.NewGetAwaitingPickupOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(o.ID()))
	suite.Equal("user-9", result[0].Customer)
	suite.InDelta(3.20, result[0].Total, 0.001)
	suite.WithinDuration(o.CreatedAt(), result[0].CreatedAt, time.Second)
	suite.WithinDuration(o.PickupAt(), result[0].PickupAt, time.Second)
}

func (suite *GetAwaitingPickupOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetAwaitingPickupOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetAwaitingPickupOrdersQuery constructor")
}

func (suite *GetAwaitingPickupOrdersQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	suite.placeOrder("user-1", time.Now())

	query := queries.NewGetAwaitingPickupOrdersQuery()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(result)
}

func TestGetAwaitingPickupOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAwaitingPickupOrdersQueryHandlerTestSuite))
}
