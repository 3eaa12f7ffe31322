package commands

import (
	"context"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/timeline"
)

// RejectPacketCommandHandler sends a completed packet back for rework.
//
// From round two on a partial packet only resets its current round; otherwise
// every included section is in scope. Sections beyond verification are never
// reset. The packet returns to its assignee in the next round.
type RejectPacketCommandHandler struct {
	uowFactory UoWFactory
}

func NewRejectPacketCommandHandler(uowFactory UoWFactory) RejectPacketCommandHandler {
	return RejectPacketCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *RejectPacketCommandHandler) Handle(ctx context.Context, cmd RejectPacketCommand) error {
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

	if err = p.ValidateReject(cmd.ReasonCode(), cmd.Reason()); err != nil {
		return err
	}
	reset, err := item.RejectPacket(p.RejectionScope(), cmd.Reason(), orderitem.PacketActive, now)
	if err != nil {
		return err
	}
	if err = p.Reject(cmd.ActorID(), cmd.ReasonCode(), cmd.Reason(), reset, now); err != nil {
		return err
	}
	item.SyncPacket(p.Phase())

	if err = uow.PacketRepository().Update(ctx, p); err != nil {
		return err
	}

	n := note{
		actor:   cmd.ActorID().String(),
		details: fmt.Sprintf("%s: %s; reset %s", cmd.ReasonCode(), cmd.Reason(),
			strings.Join(kernel.SectionStrings(reset), ",")),
	}
	if err = saveItem(ctx, uow, item, timeline.ActionPacketRejected, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
