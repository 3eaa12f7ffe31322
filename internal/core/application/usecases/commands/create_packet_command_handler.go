package commands

import (
	"context"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packet"
	"fulfillment/internal/core/domain/model/section"
	"fulfillment/internal/core/domain/model/timeline"
	"fulfillment/internal/pkg/errs"
)

// CreatePacketCommandHandler builds the pick list from the last inventory check.
//
// Without a packet it opens round one for the sections in CREATE_PACKET; the
// sections still waiting for material make the packet partial. With an
// approved partial packet it opens the next round for pending sections whose
// material has since been resolved.
type CreatePacketCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreatePacketCommandHandler(uowFactory UoWFactory) CreatePacketCommandHandler {
	return CreatePacketCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreatePacketCommandHandler) Handle(ctx context.Context, cmd CreatePacketCommand) error {
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
	p, err := findPacket(ctx, uow.PacketRepository(), item.ID())
	if err != nil {
		return err
	}

	var included []kernel.Section
	if p != nil {
		included = p.SectionsIncluded()
	}
	ready := make([]kernel.Section, 0)
	for _, s := range item.SectionsIn(section.CreatePacket) {
		if !kernel.ContainsSection(included, s) {
			ready = append(ready, s)
		}
	}
	if len(ready) == 0 {
		return errs.NewIncompletePreconditionError("no section has its material resolved",
			kernel.SectionStrings(item.SectionsIn(section.Pending, section.AwaitingMaterial))...)
	}
	lines := packet.LinesFor(item.MaterialRequirements(), ready)

	if p == nil {
		pending := item.SectionsIn(section.Pending, section.AwaitingMaterial)
		if p, err = packet.NewPacket(kernel.NewUUID(), item.ID(), ready, pending, lines, now); err != nil {
			return err
		}
		err = uow.PacketRepository().Add(ctx, p)
	} else {
		if err = p.OpenNextRound(ready, lines, now); err != nil {
			return err
		}
		err = uow.PacketRepository().Update(ctx, p)
	}
	if err != nil {
		return err
	}

	item.SyncPacket(p.Phase())
	n := note{
		actor:   cmd.ActorID().String(),
		details: fmt.Sprintf("round %d: %s", p.Round(), strings.Join(kernel.SectionStrings(ready), ",")),
	}
	if err = saveItem(ctx, uow, item, timeline.ActionPacketCreated, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
