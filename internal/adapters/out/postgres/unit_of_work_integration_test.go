package postgres_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/bom"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/timeline"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, entries []*timeline.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

// UnitOfWorkIntegrationTestSuite runs the GORM unit of work and the command
// handlers against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *MockPublisher
	factory   ports.UnitOfWorkFactory
	reader    *postgres_adapter.Reader
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
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

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.reader = postgres_adapter.NewReader(db)
}

// SetupTest truncates every table and gives each test a fresh publisher.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE " + strings.Join(postgres_adapter.Tables, ", ")).Error
	suite.Require().NoError(err)

	suite.publisher = &MockPublisher{}
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, suite.publisher, nil)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsOrderAndItems() {
	ctx := context.Background()
	o := createTestOrder(suite)
	item := createTestItem(suite, o.ID())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.OrderItemRepository().Add(ctx, item))
	suite.Require().NoError(uow.Commit(ctx))

	read := suite.factory.Create()
	suite.Require().NoError(read.Begin(ctx))
	defer func() { _ = read.Rollback(ctx) }()

	stored, err := read.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.Customer(), stored.Customer())
	suite.Equal(order.Received, stored.Status())

	items, err := read.OrderItemRepository().ListByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.True(items[0].ID().IsEqual(item.ID()))
	suite.Equal(orderitem.InventoryCheck, items[0].Status())
	suite.Equal(item.State().BasePieces, items[0].State().BasePieces)
	suite.Len(items[0].State().Sections, 2)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	o := createTestOrder(suite)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	_, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()
	order1, order2 := createTestOrder(suite), createTestOrder(suite)

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")
	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	check := suite.factory.Create()
	_, err = check.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err)
	_, err = check.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_StaleItemVersionIsRejected() {
	ctx := context.Background()
	o := createTestOrder(suite)
	item := createTestItem(suite, o.ID())

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, o))
	suite.Require().NoError(setup.OrderItemRepository().Add(ctx, item))
	suite.Require().NoError(setup.Commit(ctx))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	loaded, err := uow.OrderItemRepository().Get(ctx, item.ID())
	suite.Require().NoError(err)
	stale, err := orderitem.RestoreOrderItem(loaded.State())
	suite.Require().NoError(err)

	suite.Require().NoError(uow.OrderItemRepository().Update(ctx, loaded))
	suite.Equal(stale.Version()+1, loaded.Version())

	err = uow.OrderItemRepository().Update(ctx, stale)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PublishesTimelineAfterCommit() {
	ctx := context.Background()
	o := createTestOrder(suite)
	entry := createTestEntry(suite, o.ID())

	suite.publisher.On("Publish", mock.Anything, []*timeline.Entry{entry}).Return(nil).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.TimelineRepository().Append(ctx, entry))
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
	suite.Require().NoError(uow.Commit(ctx))

	suite.publisher.AssertExpectations(suite.T())

	entries, err := suite.reader.OrderTimeline(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(string(timeline.ActionOrderCreated), entries[0].Action)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDoesNotPublish() {
	ctx := context.Background()
	o := createTestOrder(suite)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.TimelineRepository().Append(ctx, createTestEntry(suite, o.ID())))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCursor_StartsBeforeFirstHead() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	cursor, err := uow.CursorRepository().GetForUpdate(ctx)
	suite.Require().NoError(err)
	suite.Equal(-1, cursor.LastIndex())
	suite.Require().NoError(uow.Rollback(ctx))
}

// TestWorkflow_ShortageAndBOMActivation drives the command handlers through
// the GORM repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestWorkflow_ShortageAndBOMActivation() {
	ctx := context.Background()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	uows := commands.UoWFactoryFunc(func() commands.UoW { return suite.factory.Create() })
	orders := commands.OrderUoWFactoryFunc(func() commands.OrderUoW { return suite.factory.Create() })
	catalog := commands.CatalogUoWFactoryFunc(func() commands.CatalogUoW { return suite.factory.Create() })
	supervisor := kernel.NewUUID()

	silk := kernel.NewUUID()
	createStock, err := commands.NewCreateInventoryItemCommand(silk, "Raw silk", "m", "R2-C", 2)
	suite.Require().NoError(err)
	stockHandler := commands.NewCreateInventoryItemCommandHandler(catalog)
	suite.Require().NoError(stockHandler.Handle(ctx, createStock))

	product := kernel.NewUUID()
	line, err := bom.NewItem(silk, 3.5, "m", kernel.Shirt)
	suite.Require().NoError(err)

	bomHandler := commands.NewCreateBOMCommandHandler(catalog)
	activateHandler := commands.NewActivateBOMCommandHandler(catalog)
	first, second := kernel.NewUUID(), kernel.NewUUID()
	for _, c := range []struct {
		id   kernel.UUID
		size string
	}{{first, "M"}, {second, " m "}} {
		create, err := commands.NewCreateBOMCommand(c.id, product, c.size, []bom.Item{line})
		suite.Require().NoError(err)
		suite.Require().NoError(bomHandler.Handle(ctx, create))
		activate, err := commands.NewActivateBOMCommand(c.id)
		suite.Require().NoError(err)
		suite.Require().NoError(activateHandler.Handle(ctx, activate))
	}

	check := suite.factory.Create()
	suite.Require().NoError(check.Begin(ctx))
	active, err := check.BOMRepository().GetActive(ctx, product, "M")
	suite.Require().NoError(err)
	suite.True(active.ID().IsEqual(second))
	suite.Equal(2, active.Version())
	suite.Require().NoError(check.Rollback(ctx))

	orderID, itemID := kernel.NewUUID(), kernel.NewUUID()
	spec := orderitem.Spec{
		ProductID:      product,
		Size:           "M",
		Quantity:       1,
		BasePieces:     []kernel.Section{kernel.Shirt},
		AddOnPieces:    []kernel.Section{kernel.Dupatta},
		RequiresDyeing: true,
	}
	createOrder, err := commands.NewCreateOrderCommand(orderID, order.Customer{Name: "Ayesha Khan"}, 45_000, nil,
		[]commands.NewItem{{ID: itemID, Spec: spec}}, supervisor)
	suite.Require().NoError(err)
	orderHandler := commands.NewCreateOrderCommandHandler(orders)
	suite.Require().NoError(orderHandler.Handle(ctx, createOrder))

	runCheck, err := commands.NewRunInventoryCheckCommand(itemID, supervisor)
	suite.Require().NoError(err)
	checkHandler := commands.NewRunInventoryCheckCommandHandler(uows)
	suite.Require().NoError(checkHandler.Handle(ctx, runCheck))
	suite.Require().NoError(checkHandler.Handle(ctx, runCheck))

	status, err := suite.reader.OrderItemStatus(ctx, itemID)
	suite.Require().NoError(err)
	suite.Equal(orderitem.AwaitingMaterial.String(), status.Status)

	demands, err := suite.reader.ProcurementDemands(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(demands, 1)
	suite.True(demands[0].OrderID.IsEqual(orderID))
	suite.InDelta(1.5, demands[0].Shortage, 1e-9)

	entries, err := suite.reader.OrderTimeline(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().NotEmpty(entries)
	suite.Equal(string(timeline.ActionOrderCreated), entries[0].Action)
}

func createTestOrder(suite *UnitOfWorkIntegrationTestSuite) *order.Order {
	customer := order.Customer{Name: "Sana Malik", Phone: "+923331112233", Address: "House 4, DHA Phase 5, Karachi"}
	o, err := order.NewOrder(kernel.NewUUID(), customer, 30_000, nil, time.Now().UTC())
	suite.Require().NoError(err)
	return o
}

func createTestItem(suite *UnitOfWorkIntegrationTestSuite, orderID kernel.UUID) *orderitem.OrderItem {
	item, err := orderitem.NewOrderItem(kernel.NewUUID(), orderID, orderitem.Spec{
		ProductID:  kernel.NewUUID(),
		Size:       "M",
		Quantity:   1,
		BasePieces: []kernel.Section{kernel.Shirt, kernel.Trouser},
	}, time.Now().UTC())
	suite.Require().NoError(err)
	return item
}

func createTestEntry(suite *UnitOfWorkIntegrationTestSuite, orderID kernel.UUID) *timeline.Entry {
	e, err := timeline.NewEntry(orderID, nil, timeline.ActionOrderCreated, "system", "", time.Now().UTC())
	suite.Require().NoError(err)
	return &e
}
