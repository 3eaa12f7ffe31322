package commands

import (
	"context"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timeline"
)

// CompletePacketCommandHandler closes picking. Every line must be picked; the
// sections of the current round move to PACKET_VERIFICATION.
type CompletePacketCommandHandler struct {
	uowFactory UoWFactory
}

func NewCompletePacketCommandHandler(uowFactory UoWFactory) CompletePacketCommandHandler {
	return CompletePacketCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CompletePacketCommandHandler) Handle(ctx context.Context, cmd CompletePacketCommand) error {
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

	if err = p.Complete(cmd.ActorID(), now); err != nil {
		return err
	}
	round := p.CurrentRoundSections()
	if err = item.CompletePacketRound(round, p.Phase(), now); err != nil {
		return err
	}
	if err = uow.PacketRepository().Update(ctx, p); err != nil {
		return err
	}

	n := note{
		actor:   cmd.ActorID().String(),
		details: fmt.Sprintf("round %d: %s", p.Round(), strings.Join(kernel.SectionStrings(round), ",")),
	}
	if err = saveItem(ctx, uow, item, timeline.ActionPacketCompleted, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
