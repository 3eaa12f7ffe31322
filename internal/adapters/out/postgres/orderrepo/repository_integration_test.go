package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/section"
	"fulfillment/internal/pkg/errs"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies the order and order item
// repositories against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orders    *orderrepo.GormOrderRepository
	items     *orderrepo.GormOrderItemRepository
	tracker   *MockAggregateTracker
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.PaymentDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.SectionDTO{},
		&orderrepo.RequirementDTO{},
		&orderrepo.CustomBOMLineDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE custom_bom_lines, material_requirements, order_item_sections, " +
		"order_items, payments, orders").Error
	suite.Require().NoError(err)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.orders = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
	suite.items = orderrepo.NewGormOrderItemRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsPayments() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.orders.Add(ctx, o))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	payment, err := order.NewPayment(kernel.NewUUID(), 10_000, "bank transfer", "TRX-1881", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(o.RecordPayment(payment, time.Now().UTC()))
	suite.Require().NoError(suite.orders.Update(ctx, o))
	suite.Require().NoError(suite.orders.Update(ctx, o), "stored payments are skipped")

	stored, err := suite.orders.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(10_000), stored.PaidAmount())
	suite.Equal(int64(20_000), stored.Balance())
	suite.Require().Len(stored.Payments(), 1)
	suite.Equal("TRX-1881", stored.Payments()[0].Reference)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	err := suite.orders.Update(context.Background(), suite.newOrder())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListOpen_SkipsDispatchedOrders() {
	ctx := context.Background()
	open := suite.newOrder()
	suite.Require().NoError(suite.orders.Add(ctx, open))

	state := suite.newOrder().State()
	state.Status = order.Dispatched
	shipped, err := order.RestoreOrder(state)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(ctx, shipped))

	orders, err := suite.orders.ListOpen(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.True(orders[0].ID().IsEqual(open.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestItemUpdate_BumpsVersionAndReplacesSections() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.orders.Add(ctx, o))
	item := suite.newItem(o.ID(), nil)
	suite.Require().NoError(suite.items.Add(ctx, item))

	state := item.State()
	rec := state.Sections[kernel.Shirt]
	rec.Status = section.ReadyForProduction
	state.Sections[kernel.Shirt] = rec
	state.Status = orderitem.ReadyForProduction
	changed, err := orderitem.RestoreOrderItem(state)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.items.Update(ctx, changed))
	suite.Equal(item.Version()+1, changed.Version())

	stored, err := suite.items.Get(ctx, item.ID())
	suite.Require().NoError(err)
	suite.Equal(changed.Version(), stored.Version())
	suite.Equal(orderitem.ReadyForProduction, stored.Status())
	suite.Equal(section.ReadyForProduction, stored.State().Sections[kernel.Shirt].Status)

	err = suite.items.Update(ctx, item)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetFirstEligibleForHead() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.orders.Add(ctx, o))

	waiting := suite.newItem(o.ID(), nil)
	suite.Require().NoError(suite.items.Add(ctx, waiting))

	_, err := suite.items.GetFirstEligibleForHead(ctx)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	head := kernel.NewUUID()
	older := suite.readyItem(o.ID(), &head, time.Now().Add(-2*time.Hour))
	eligible := suite.readyItem(o.ID(), nil, time.Now().Add(-time.Hour))
	newer := suite.readyItem(o.ID(), nil, time.Now())
	for _, it := range []*orderitem.OrderItem{older, eligible, newer} {
		suite.Require().NoError(suite.items.Add(ctx, it))
	}

	found, err := suite.items.GetFirstEligibleForHead(ctx)
	suite.Require().NoError(err)
	suite.True(found.ID().IsEqual(eligible.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder() *order.Order {
	customer := order.Customer{Name: "Mehreen Ali", Phone: "+923214567890", Address: "7 Model Town, Lahore"}
	o, err := order.NewOrder(kernel.NewUUID(), customer, 30_000, nil, time.Now().UTC())
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) newItem(orderID kernel.UUID, created *time.Time) *orderitem.OrderItem {
	now := time.Now().UTC()
	if created != nil {
		now = created.UTC()
	}
	item, err := orderitem.NewOrderItem(kernel.NewUUID(), orderID, orderitem.Spec{
		ProductID:  kernel.NewUUID(),
		Size:       "L",
		Quantity:   1,
		BasePieces: []kernel.Section{kernel.Shirt},
	}, now)
	suite.Require().NoError(err)
	return item
}

// readyItem builds an item whose shirt waits for production.
func (suite *OrderRepositoryIntegrationTestSuite) readyItem(orderID kernel.UUID, head *kernel.UUID, created time.Time) *orderitem.OrderItem {
	state := suite.newItem(orderID, &created).State()
	rec := state.Sections[kernel.Shirt]
	rec.Status = section.ReadyForProduction
	state.Sections[kernel.Shirt] = rec
	state.Status = orderitem.ReadyForProduction
	state.ProductionHeadID = head
	item, err := orderitem.RestoreOrderItem(state)
	suite.Require().NoError(err)
	return item
}
