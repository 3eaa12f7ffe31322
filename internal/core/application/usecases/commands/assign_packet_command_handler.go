package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/timeline"
)

type AssignPacketCommandHandler struct {
	uowFactory UoWFactory
}

func NewAssignPacketCommandHandler(uowFactory UoWFactory) AssignPacketCommandHandler {
	return AssignPacketCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *AssignPacketCommandHandler) Handle(ctx context.Context, cmd AssignPacketCommand) error {
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
	item, err := uow.OrderItemRepository().Get(ctx, cmd.OrderItemID())
	if err != nil {
		return err
	}
	p, err := uow.PacketRepository().GetByOrderItem(ctx, item.ID())
	if err != nil {
		return err
	}

	if err = p.Assign(cmd.AssigneeID(), cmd.ActorID(), now); err != nil {
		return err
	}
	if err = uow.PacketRepository().Update(ctx, p); err != nil {
		return err
	}

	item.SyncPacket(p.Phase())
	n := note{actor: cmd.ActorID().String(), details: "assignee " + cmd.AssigneeID().String()}
	if err = saveItem(ctx, uow, item, timeline.ActionPacketAssigned, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
