package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/timeline"
)

// CreateOrderCommandHandler registers an order and its garments. Every item
// starts in INVENTORY_CHECK with all of its sections PENDING.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order intake.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the order and its items in one transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := clock()
	o, err := order.NewOrder(cmd.OrderID(), cmd.Customer(), cmd.TotalAmount(), cmd.FwdDate(), now)
	if err != nil {
		return err
	}

	items := make([]*orderitem.OrderItem, 0, len(cmd.Items()))
	for _, in := range cmd.Items() {
		item, err := orderitem.NewOrderItem(in.ID, o.ID(), in.Spec, now)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}
	for _, item := range items {
		if err = uow.OrderItemRepository().Add(ctx, item); err != nil {
			return err
		}
	}

	n := note{actor: cmd.ActorID().String(), details: fmt.Sprintf("%d item(s)", len(items))}
	if err = appendEntry(ctx, uow.TimelineRepository(), o.ID(), nil, timeline.ActionOrderCreated, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
