package jobs

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/orderitem"
)

type fixture struct {
	t       *testing.T
	store   *memory.Store
	factory *memory.UnitOfWorkFactory
	uows    commands.UoWFactory
	orders  commands.OrderUoWFactory
	catalog commands.CatalogUoWFactory
	user    kernel.UUID
}

func newFixture(t *testing.T) *fixture {
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store, nil, nil)
	return &fixture{
		t:       t,
		store:   store,
		factory: factory,
		uows:    commands.UoWFactoryFunc(func() commands.UoW { return factory.Create() }),
		orders:  commands.OrderUoWFactoryFunc(func() commands.OrderUoW { return factory.Create() }),
		catalog: commands.CatalogUoWFactoryFunc(func() commands.CatalogUoW { return factory.Create() }),
		user:    kernel.NewUUID(),
	}
}

func (f *fixture) createOrder(fwd *time.Time) (orderID, itemID kernel.UUID) {
	orderID, itemID = kernel.NewUUID(), kernel.NewUUID()
	spec := orderitem.Spec{ProductID: kernel.NewUUID(), Size: "S", Quantity: 1, BasePieces: []kernel.Section{kernel.Shirt}}
	cmd, err := commands.NewCreateOrderCommand(orderID, order.Customer{Name: "Hina Riaz"}, 18_000, fwd,
		[]commands.NewItem{{ID: itemID, Spec: spec}}, f.user)
	require.NoError(f.t, err)
	h := commands.NewCreateOrderCommandHandler(f.orders)
	require.NoError(f.t, h.Handle(f.t.Context(), cmd))
	return orderID, itemID
}

// readyForProduction walks an item without materials through an empty packet.
func (f *fixture) readyForProduction(itemID kernel.UUID) {
	ctx := f.t.Context()

	check, err := commands.NewRunInventoryCheckCommand(itemID, f.user)
	require.NoError(f.t, err)
	checkHandler := commands.NewRunInventoryCheckCommandHandler(f.uows)
	require.NoError(f.t, checkHandler.Handle(ctx, check))

	create, err := commands.NewCreatePacketCommand(itemID, f.user)
	require.NoError(f.t, err)
	createHandler := commands.NewCreatePacketCommandHandler(f.uows)
	require.NoError(f.t, createHandler.Handle(ctx, create))

	assign, err := commands.NewAssignPacketCommand(itemID, f.user, f.user)
	require.NoError(f.t, err)
	assignHandler := commands.NewAssignPacketCommandHandler(f.uows)
	require.NoError(f.t, assignHandler.Handle(ctx, assign))

	start, err := commands.NewStartPacketCommand(itemID, f.user)
	require.NoError(f.t, err)
	startHandler := commands.NewStartPacketCommandHandler(f.uows)
	require.NoError(f.t, startHandler.Handle(ctx, start))

	complete, err := commands.NewCompletePacketCommand(itemID, f.user)
	require.NoError(f.t, err)
	completeHandler := commands.NewCompletePacketCommandHandler(f.uows)
	require.NoError(f.t, completeHandler.Handle(ctx, complete))

	approve, err := commands.NewApprovePacketCommand(itemID, false, f.user)
	require.NoError(f.t, err)
	approveHandler := commands.NewApprovePacketCommandHandler(f.uows)
	require.NoError(f.t, approveHandler.Handle(ctx, approve))
}

func (f *fixture) createHead(name string, sortOrder int) kernel.UUID {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateProductionHeadCommand(id, name, sortOrder)
	require.NoError(f.t, err)
	h := commands.NewCreateProductionHeadCommandHandler(f.catalog)
	require.NoError(f.t, h.Handle(f.t.Context(), cmd))
	return id
}

func (f *fixture) headOf(itemID kernel.UUID) *kernel.UUID {
	status, err := memory.NewReader(f.store).OrderItemStatus(f.t.Context(), itemID)
	require.NoError(f.t, err)
	return status.ProductionHeadID
}

func TestHeadAssignmentJob_DrainsWaitingItems(t *testing.T) {
	f := newFixture(t)
	headA := f.createHead("Cutting hall", 1)
	headB := f.createHead("Stitching hall", 2)

	items := make([]kernel.UUID, 0, 3)
	for range 3 {
		_, itemID := f.createOrder(nil)
		f.readyForProduction(itemID)
		items = append(items, itemID)
	}

	job := NewHeadAssignmentJob(commands.NewAssignNextProductionHeadCommandHandler(f.uows), "@every 1m", slog.Default())
	assert.Equal(t, 3, job.run(t.Context()))
	assert.Equal(t, 0, job.run(t.Context()))

	want := []kernel.UUID{headA, headB, headA}
	for i, itemID := range items {
		head := f.headOf(itemID)
		require.NotNil(t, head)
		assert.True(t, head.IsEqual(want[i]))
	}
}

func TestHeadAssignmentJob_StopsWithoutActiveHeads(t *testing.T) {
	f := newFixture(t)
	_, itemID := f.createOrder(nil)
	f.readyForProduction(itemID)

	job := NewHeadAssignmentJob(commands.NewAssignNextProductionHeadCommandHandler(f.uows), "@every 1m", slog.Default())
	assert.Equal(t, 0, job.run(t.Context()))
	assert.Nil(t, f.headOf(itemID))
}

func TestUrgencyRefreshJob_FlagsOrdersInsideWindow(t *testing.T) {
	f := newFixture(t)
	soon := time.Now().Add(24 * time.Hour)
	later := time.Now().Add(30 * 24 * time.Hour)
	soonID, _ := f.createOrder(&soon)
	laterID, _ := f.createOrder(&later)

	job := NewUrgencyRefreshJob(commands.NewRefreshUrgencyCommandHandler(f.orders), 3*24*time.Hour, "@every 1h", slog.Default())
	job.run(t.Context())

	uow := f.factory.Create()
	require.NoError(t, uow.Begin(t.Context()))
	defer func() { _ = uow.Rollback(t.Context()) }()

	urgent, err := uow.OrderRepository().Get(t.Context(), soonID)
	require.NoError(t, err)
	assert.True(t, urgent.IsUrgent())

	relaxed, err := uow.OrderRepository().Get(t.Context(), laterID)
	require.NoError(t, err)
	assert.False(t, relaxed.IsUrgent())
}

func TestJobManager_StartAndStop(t *testing.T) {
	f := newFixture(t)
	urgency := NewUrgencyRefreshJob(commands.NewRefreshUrgencyCommandHandler(f.orders), time.Hour, "@every 1h", slog.Default())
	heads := NewHeadAssignmentJob(commands.NewAssignNextProductionHeadCommandHandler(f.uows), "not a schedule", slog.Default())

	jm := NewJobManager(urgency, heads)
	require.Error(t, jm.StartAll())
	assert.Empty(t, jm.started)

	fresh := NewUrgencyRefreshJob(commands.NewRefreshUrgencyCommandHandler(f.orders), time.Hour, "@every 1h", slog.Default())
	jm = NewJobManager(fresh, nil)
	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
