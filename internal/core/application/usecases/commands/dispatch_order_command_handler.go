package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/timeline"
	"fulfillment/internal/core/domain/services"
)

// DispatchOrderCommandHandler dispatches an order and cascades DISPATCHED to
// every item, writing one timeline entry per item.
//
// Example:
//
//	handler := NewDispatchOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // the order is not READY_FOR_DISPATCH or an item is not client approved
//	}
type DispatchOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher services.OrderDispatcher
}

func NewDispatchOrderCommandHandler(uowFactory OrderUoWFactory) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewOrderDispatcher(),
	}
}

func (h *DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := clock()
	o, items, err := loadOrderWithItems(ctx, uow, cmd.OrderID())
	if err != nil {
		return err
	}

	shipment := services.Shipment{
		Courier:        cmd.Courier(),
		TrackingNumber: cmd.TrackingNumber(),
		DispatchedAt:   cmd.DispatchedAt(),
	}
	if err = h.dispatcher.Dispatch(o, items, shipment, now); err != nil {
		return err
	}

	n := note{actor: cmd.ActorID().String(), details: cmd.Courier() + " " + cmd.TrackingNumber()}
	if err = storeCascade(ctx, uow, o, items, timeline.ActionOrderDispatched, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// loadOrderWithItems locks the items before their order, the same order
// item handlers take locks in.
func loadOrderWithItems(ctx context.Context, uow OrderRepoFactory, orderID kernel.UUID) (*order.Order, []*orderitem.OrderItem, error) {
	items, err := uow.OrderItemRepository().ListByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return o, items, nil
}

// storeCascade persists an order together with every item it changed and
// records the change once on the order and once per item.
func storeCascade(
	ctx context.Context,
	uow orderScope,
	o *order.Order,
	items []*orderitem.OrderItem,
	action timeline.Action,
	n note,
	at time.Time,
) error {
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	if err := appendEntry(ctx, uow.TimelineRepository(), o.ID(), nil, action, n, at); err != nil {
		return err
	}
	for _, item := range items {
		if err := uow.OrderItemRepository().Update(ctx, item); err != nil {
			return err
		}
		id := item.ID()
		if err := appendEntry(ctx, uow.TimelineRepository(), o.ID(), &id, action, n, at); err != nil {
			return err
		}
	}
	return nil
}
