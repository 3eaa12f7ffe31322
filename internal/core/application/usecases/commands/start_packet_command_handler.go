package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/timeline"
)

type StartPacketCommandHandler struct {
	uowFactory UoWFactory
}

func NewStartPacketCommandHandler(uowFactory UoWFactory) StartPacketCommandHandler {
	return StartPacketCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *StartPacketCommandHandler) Handle(ctx context.Context, cmd StartPacketCommand) error {
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

	if err = p.Start(cmd.ActorID(), now); err != nil {
		return err
	}
	if err = uow.PacketRepository().Update(ctx, p); err != nil {
		return err
	}

	item.SyncPacket(p.Phase())
	if err = saveItem(ctx, uow, item, timeline.ActionPacketStarted, note{actor: cmd.ActorID().String()}, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
