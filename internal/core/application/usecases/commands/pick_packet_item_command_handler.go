package commands

import (
	"context"
)

// PickPacketItemCommandHandler records a pick. Picks do not touch the order
// item, so no timeline entry is written.
type PickPacketItemCommandHandler struct {
	uowFactory UoWFactory
}

func NewPickPacketItemCommandHandler(uowFactory UoWFactory) PickPacketItemCommandHandler {
	return PickPacketItemCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *PickPacketItemCommandHandler) Handle(ctx context.Context, cmd PickPacketItemCommand) error {
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

	// The item row lock serializes picks with the other packet transitions.
	item, err := uow.OrderItemRepository().Get(ctx, cmd.OrderItemID())
	if err != nil {
		return err
	}
	p, err := uow.PacketRepository().GetByOrderItem(ctx, item.ID())
	if err != nil {
		return err
	}

	if err = p.Pick(cmd.LineID(), cmd.Quantity(), clock()); err != nil {
		return err
	}
	if err = uow.PacketRepository().Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
