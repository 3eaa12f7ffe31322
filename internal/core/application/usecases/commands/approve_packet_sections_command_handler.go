package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/timeline"
)

// ApprovePacketSectionsCommandHandler routes the named sections without
// waiting for the whole packet. Every named section must be in the packet with
// its lines picked. The packet becomes APPROVED once it is completed and none
// of its sections is left at or before verification.
type ApprovePacketSectionsCommandHandler struct {
	uowFactory UoWFactory
}

func NewApprovePacketSectionsCommandHandler(uowFactory UoWFactory) ApprovePacketSectionsCommandHandler {
	return ApprovePacketSectionsCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ApprovePacketSectionsCommandHandler) Handle(ctx context.Context, cmd ApprovePacketSectionsCommand) error {
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

	if err = p.ValidateSpecificApproval(cmd.Sections()); err != nil {
		return err
	}
	route := item.ApprovalRoute(cmd.IsReadyStock())
	if err = item.ApproveSpecificSections(cmd.Sections(), p.SectionsIncluded(), route, p.IsSectionPicked, p.Phase(), now); err != nil {
		return err
	}
	if _, err = p.SettleApproval(item.SectionStatuses(), cmd.ActorID(), now); err != nil {
		return err
	}
	item.SyncPacket(p.Phase())

	if err = settleApprovedMaterial(ctx, uow, item, cmd.Sections(), route, now); err != nil {
		return err
	}
	if err = uow.PacketRepository().Update(ctx, p); err != nil {
		return err
	}

	n := note{actor: cmd.ActorID().String(), details: routeSummary(route, cmd.Sections())}
	if err = saveItem(ctx, uow, item, timeline.ActionSectionsApproved, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
