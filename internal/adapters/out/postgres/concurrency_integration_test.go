package postgres_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/timeline"
)

const raceTimeout = 30 * time.Second

// TestWorkflow_ParallelItemsOfOneOrder walks two items of the same order
// through the packet flow side by side. Every step locks its item and then
// the shared order row, so none of them may fail with a deadlock.
func (suite *UnitOfWorkIntegrationTestSuite) TestWorkflow_ParallelItemsOfOneOrder() {
	ctx, cancel := context.WithTimeout(context.Background(), raceTimeout)
	defer cancel()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	supervisor, picker := kernel.NewUUID(), kernel.NewUUID()
	for range 3 {
		orderID, itemIDs := suite.createOrderWithItems(ctx, supervisor, 2)

		errsCh := make(chan error, len(itemIDs))
		var wg sync.WaitGroup
		for _, itemID := range itemIDs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errsCh <- suite.walkToProduction(ctx, itemID, supervisor, picker)
			}()
		}
		wg.Wait()
		close(errsCh)

		for err := range errsCh {
			suite.Require().NoError(err)
		}

		for _, itemID := range itemIDs {
			status, err := suite.reader.OrderItemStatus(ctx, itemID)
			suite.Require().NoError(err)
			suite.Equal(orderitem.ReadyForProduction.String(), status.Status)
		}

		check := suite.factory.Create()
		suite.Require().NoError(check.Begin(ctx))
		o, err := check.OrderRepository().Get(ctx, orderID)
		suite.Require().NoError(err)
		suite.Equal(order.InProgress, o.Status())
		suite.Require().NoError(check.Rollback(ctx))
	}
}

// TestAssignNext_ParallelRotation runs the round-robin assignment from many
// goroutines at once. Each head ends up with its floor or ceiling share and
// no item is handed a head twice.
func (suite *UnitOfWorkIntegrationTestSuite) TestAssignNext_ParallelRotation() {
	const heads, items = 3, 8

	ctx, cancel := context.WithTimeout(context.Background(), raceTimeout)
	defer cancel()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	catalog := commands.CatalogUoWFactoryFunc(func() commands.CatalogUoW { return suite.factory.Create() })
	headHandler := commands.NewCreateProductionHeadCommandHandler(catalog)
	headIDs := make([]kernel.UUID, 0, heads)
	for i := range heads {
		id := kernel.NewUUID()
		create, err := commands.NewCreateProductionHeadCommand(id, "Workshop "+string(rune('A'+i)), i+1)
		suite.Require().NoError(err)
		suite.Require().NoError(headHandler.Handle(ctx, create))
		headIDs = append(headIDs, id)
	}

	supervisor, picker := kernel.NewUUID(), kernel.NewUUID()
	orderOf := make(map[kernel.UUID]kernel.UUID, items)
	for range items {
		orderID, itemIDs := suite.createOrderWithItems(ctx, supervisor, 1)
		suite.Require().NoError(suite.walkToProduction(ctx, itemIDs[0], supervisor, picker))
		orderOf[itemIDs[0]] = orderID
	}

	uows := commands.UoWFactoryFunc(func() commands.UoW { return suite.factory.Create() })
	assign := commands.NewAssignNextProductionHeadCommandHandler(uows)

	errsCh := make(chan error, items)
	var wg sync.WaitGroup
	for range items {
		cmd, err := commands.NewAssignNextProductionHeadCommand()
		suite.Require().NoError(err)
		wg.Add(1)
		go func() {
			defer wg.Done()
			errsCh <- assign.Handle(ctx, cmd)
		}()
	}
	wg.Wait()
	close(errsCh)

	for err := range errsCh {
		suite.Require().NoError(err)
	}

	perHead := make(map[kernel.UUID]int, heads)
	for itemID, orderID := range orderOf {
		status, err := suite.reader.OrderItemStatus(ctx, itemID)
		suite.Require().NoError(err)
		suite.Require().NotNil(status.ProductionHeadID)
		suite.Contains(headIDs, *status.ProductionHeadID)
		perHead[*status.ProductionHeadID]++

		entries, err := suite.reader.OrderTimeline(ctx, orderID)
		suite.Require().NoError(err)
		assigned := 0
		for _, e := range entries {
			if e.Action == string(timeline.ActionHeadAssigned) {
				assigned++
			}
		}
		suite.Equal(1, assigned, "item %s", itemID)
	}

	counts := make([]int, 0, heads)
	for _, id := range headIDs {
		counts = append(counts, perHead[id])
	}
	slices.Sort(counts)
	suite.Equal([]int{items / heads, items/heads + 1, items/heads + 1}, counts)

	check := suite.factory.Create()
	suite.Require().NoError(check.Begin(ctx))
	cursor, err := check.CursorRepository().GetForUpdate(ctx)
	suite.Require().NoError(err)
	suite.Equal((items-1)%heads, cursor.LastIndex())
	suite.Require().NoError(check.Rollback(ctx))

	cmd, err := commands.NewAssignNextProductionHeadCommand()
	suite.Require().NoError(err)
	suite.Require().ErrorIs(assign.Handle(ctx, cmd), commands.ErrNoItemAwaitsHead)
}

// createOrderWithItems stores an order whose n items need neither BOM nor
// dyeing.
func (suite *UnitOfWorkIntegrationTestSuite) createOrderWithItems(
	ctx context.Context,
	actor kernel.UUID,
	n int,
) (kernel.UUID, []kernel.UUID) {
	orderID := kernel.NewUUID()
	itemIDs := make([]kernel.UUID, 0, n)
	items := make([]commands.NewItem, 0, n)
	for range n {
		id := kernel.NewUUID()
		itemIDs = append(itemIDs, id)
		items = append(items, commands.NewItem{ID: id, Spec: orderitem.Spec{
			ProductID:  kernel.NewUUID(),
			Size:       "M",
			Quantity:   1,
			BasePieces: []kernel.Section{kernel.Shirt},
		}})
	}

	customer := order.Customer{Name: "Hira Qureshi", Phone: "+923214445566", Address: "7 Model Town, Lahore"}
	create, err := commands.NewCreateOrderCommand(orderID, customer, 52_000, nil, items, actor)
	suite.Require().NoError(err)
	orders := commands.OrderUoWFactoryFunc(func() commands.OrderUoW { return suite.factory.Create() })
	h := commands.NewCreateOrderCommandHandler(orders)
	suite.Require().NoError(h.Handle(ctx, create))
	return orderID, itemIDs
}

// walkToProduction moves an item without BOM lines through an empty packet.
// It only returns errors so it can run off the test goroutine.
func (suite *UnitOfWorkIntegrationTestSuite) walkToProduction(
	ctx context.Context,
	itemID, supervisor, picker kernel.UUID,
) error {
	uows := commands.UoWFactoryFunc(func() commands.UoW { return suite.factory.Create() })

	check, err := commands.NewRunInventoryCheckCommand(itemID, supervisor)
	if err != nil {
		return err
	}
	checkHandler := commands.NewRunInventoryCheckCommandHandler(uows)
	if err = checkHandler.Handle(ctx, check); err != nil {
		return err
	}

	create, err := commands.NewCreatePacketCommand(itemID, supervisor)
	if err != nil {
		return err
	}
	createHandler := commands.NewCreatePacketCommandHandler(uows)
	if err = createHandler.Handle(ctx, create); err != nil {
		return err
	}

	assign, err := commands.NewAssignPacketCommand(itemID, picker, supervisor)
	if err != nil {
		return err
	}
	assignHandler := commands.NewAssignPacketCommandHandler(uows)
	if err = assignHandler.Handle(ctx, assign); err != nil {
		return err
	}

	start, err := commands.NewStartPacketCommand(itemID, picker)
	if err != nil {
		return err
	}
	startHandler := commands.NewStartPacketCommandHandler(uows)
	if err = startHandler.Handle(ctx, start); err != nil {
		return err
	}

	complete, err := commands.NewCompletePacketCommand(itemID, picker)
	if err != nil {
		return err
	}
	completeHandler := commands.NewCompletePacketCommandHandler(uows)
	if err = completeHandler.Handle(ctx, complete); err != nil {
		return err
	}

	approve, err := commands.NewApprovePacketCommand(itemID, false, supervisor)
	if err != nil {
		return err
	}
	approveHandler := commands.NewApprovePacketCommandHandler(uows)
	return approveHandler.Handle(ctx, approve)
}
