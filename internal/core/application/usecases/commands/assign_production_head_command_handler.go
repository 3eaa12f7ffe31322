package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/timeline"
)

// AssignProductionHeadCommandHandler assigns heads in strict rotation.
//
// The cursor row stays locked until commit, so two concurrent assignments
// always receive consecutive heads. Active heads rotate in sort order, the
// n-th assignment going to heads[n mod N].
type AssignProductionHeadCommandHandler struct {
	uowFactory UoWFactory
}

func NewAssignProductionHeadCommandHandler(uowFactory UoWFactory) AssignProductionHeadCommandHandler {
	return AssignProductionHeadCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *AssignProductionHeadCommandHandler) Handle(ctx context.Context, cmd AssignProductionHeadCommand) error {
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

	item, err := uow.OrderItemRepository().Get(ctx, cmd.OrderItemID())
	if err != nil {
		return err
	}
	if err = assignNextHead(ctx, uow, item, cmd.ActorID().String()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func assignNextHead(ctx context.Context, uow UoW, item *orderitem.OrderItem, actor string) error {
	now := clock()
	cursor, err := uow.CursorRepository().GetForUpdate(ctx)
	if err != nil {
		return err
	}
	heads, err := uow.ProductionHeadRepository().ListAll(ctx)
	if err != nil {
		return err
	}

	head, err := cursor.Next(heads)
	if err != nil {
		return err
	}
	if err = item.AssignProductionHead(head.ID(), now); err != nil {
		return err
	}
	if err = uow.CursorRepository().Update(ctx, cursor); err != nil {
		return err
	}

	n := note{actor: actor, details: head.Name() + " (" + head.ID().String() + ")"}
	return saveItem(ctx, uow, item, timeline.ActionHeadAssigned, n, now)
}
