package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/adapters/out/postgres"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/adapters/out/postgres/orderrepo"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type OrderRepositoryTestSuite struct {
	suite.Suite
	container  *pgcontainer.PostgresContainer
	db         *gorm.DB
	repo       *orderrepo.GormOrderRepository
	uowFactory *postgres.GormUnitOfWorkFactory
}

func (suite *OrderRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.OrderHistoryDTO{},
		&orderrepo.OrderHistoryItemDTO{},
	)
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db)
	suite.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *OrderRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_history CASCADE").Error)
}

func (suite *OrderRepositoryTestSuite) money(v int64) kernel.Money {
	m, err := kernel.NewMoneyFromSatang(v)
	suite.Require().NoError(err)
	return m
}

func (suite *OrderRepositoryTestSuite) newOrder(customerName string) *order.Order {
	iced, err := order.NewOptionSnapshot("temperature", "Iced", suite.money(500))
	suite.Require().NoError(err)

	latte, err := order.NewOrderItem(
		kernel.NewUUID(), "Latte", suite.money(6000), 2,
		[]order.OptionSnapshot{iced}, "less sugar", suite.money(13000),
	)
	suite.Require().NoError(err)

	croissant, err := order.NewOrderItem(
		kernel.NewUUID(), "Croissant", suite.money(4500), 1,
		nil, "", suite.money(4500),
	)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), customerName,
		[]order.OrderItem{latte, croissant},
		suite.money(17500),
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	aggregate := suite.newOrder("Somchai")

	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	loaded, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(aggregate.ID()))
	suite.Equal("Somchai", loaded.CustomerName())
	suite.Equal(order.Pending, loaded.Status())
	suite.True(loaded.Total().IsEqual(suite.money(17500)))

	items := loaded.Items()
	suite.Require().Len(items, 2)
	// Cart order survives persistence.
	suite.Equal("Latte", items[0].Name())
	suite.Equal("Croissant", items[1].Name())

	suite.True(items[0].LineTotal().IsEqual(suite.money(13000)))
	suite.Equal("less sugar", items[0].Note())
	suite.Require().Len(items[0].Options(), 1)
	suite.Equal("Iced", items[0].Options()[0].Name())
	suite.True(items[0].Options()[0].PriceAdjustment().IsEqual(suite.money(500)))
	suite.Empty(items[1].Options())
}

func (suite *OrderRepositoryTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestUpdateStatus_PersistsOnlyStatus() {
	ctx := context.Background()
	aggregate := suite.newOrder("Somchai")
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	changed, err := aggregate.TransitionTo(order.Preparing)
	suite.Require().NoError(err)
	suite.True(changed)
	suite.Require().NoError(suite.repo.UpdateStatus(ctx, aggregate))

	loaded, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, loaded.Status())
	suite.True(loaded.Total().IsEqual(suite.money(17500)))
	suite.Len(loaded.Items(), 2)
}

func (suite *OrderRepositoryTestSuite) TestUpdateStatus_NotFound() {
	aggregate := suite.newOrder("Ghost")

	err := suite.repo.UpdateStatus(context.Background(), aggregate)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestArchive_MovesOrderToHistory() {
	ctx := context.Background()
	aggregate := suite.newOrder("Somchai")
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	archived, err := suite.repo.Archive(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(archived.ID().IsEqual(aggregate.ID()))

	// Gone from the live store.
	_, err = suite.repo.Get(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var liveItems int64
	suite.Require().NoError(
		suite.db.Model(&orderrepo.OrderItemDTO{}).
			Where("order_id = ?", aggregate.ID().Bytes()).
			Count(&liveItems).Error,
	)
	suite.Zero(liveItems)

	// Present in history, items included.
	var history orderrepo.OrderHistoryDTO
	err = suite.db.Preload("Items").First(&history, "id = ?", aggregate.ID().Bytes()).Error
	suite.Require().NoError(err)
	suite.Equal("Somchai", history.CustomerName)
	suite.Equal(int64(17500), history.Total)
	suite.Len(history.Items, 2)
	suite.False(history.ArchivedAt.IsZero())
}

func (suite *OrderRepositoryTestSuite) TestArchive_NotFound() {
	_, err := suite.repo.Archive(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestGetIDsCreatedBefore_FiltersAndSortsOldestFirst() {
	ctx := context.Background()

	first := suite.newOrder("First")
	suite.Require().NoError(suite.repo.Add(ctx, first))
	time.Sleep(10 * time.Millisecond)
	second := suite.newOrder("Second")
	suite.Require().NoError(suite.repo.Add(ctx, second))

	cutoff := time.Now().UTC().Add(time.Minute)

	ids, err := suite.repo.GetIDsCreatedBefore(ctx, cutoff)
	suite.Require().NoError(err)
	suite.Require().Len(ids, 2)
	suite.True(ids[0].IsEqual(first.ID()))
	suite.True(ids[1].IsEqual(second.ID()))

	// Nothing predates a cutoff in the past.
	ids, err = suite.repo.GetIDsCreatedBefore(ctx, time.Now().UTC().Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Empty(ids)
}

func (suite *OrderRepositoryTestSuite) TestUnitOfWork_RollbackLeavesNoTrace() {
	ctx := context.Background()
	aggregate := suite.newOrder("Somchai")

	uow := suite.uowFactory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var liveItems int64
	suite.Require().NoError(
		suite.db.Model(&orderrepo.OrderItemDTO{}).
			Where("order_id = ?", aggregate.ID().Bytes()).
			Count(&liveItems).Error,
	)
	suite.Zero(liveItems)
}

func (suite *OrderRepositoryTestSuite) TestUnitOfWork_CommitMakesOrderVisible() {
	ctx := context.Background()
	aggregate := suite.newOrder("Somchai")

	uow := suite.uowFactory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Len(loaded.Items(), 2)
}

func TestOrderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}
