package commands

import (
	"context"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timeline"
)

// RejectDyeingCommandHandler returns sections from dyeing to the packet.
//
// The sections give their reserved material back to stock, move to
// CREATE_PACKET, and the packet reopens a rework round for them with the
// original assignee.
type RejectDyeingCommandHandler struct {
	uowFactory UoWFactory
}

func NewRejectDyeingCommandHandler(uowFactory UoWFactory) RejectDyeingCommandHandler {
	return RejectDyeingCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *RejectDyeingCommandHandler) Handle(ctx context.Context, cmd RejectDyeingCommand) error {
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

	if err = item.RejectDyeing(cmd.Sections(), cmd.ReasonCode(), cmd.Notes(), now); err != nil {
		return err
	}
	for _, s := range cmd.Sections() {
		if err = p.OpenReworkRound(s, now); err != nil {
			return err
		}
	}
	item.SyncPacket(p.Phase())

	if err = releaseReservations(ctx, uow, item.ID(), cmd.Sections(), now); err != nil {
		return err
	}
	if err = uow.PacketRepository().Update(ctx, p); err != nil {
		return err
	}

	n := note{
		actor:   cmd.ActorID().String(),
		details: fmt.Sprintf("%s: %s", strings.Join(kernel.SectionStrings(cmd.Sections()), ","), cmd.Notes()),
	}
	if cmd.ReasonCode() != "" {
		n.details = cmd.ReasonCode() + " " + n.details
	}
	if err = saveItem(ctx, uow, item, timeline.ActionDyeingRejected, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
