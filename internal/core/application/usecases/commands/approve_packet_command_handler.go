package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/timeline"
)

// ApprovePacketCommandHandler approves a completed packet and routes every
// section waiting for verification to QA (ready stock), dyeing or production.
// Sections already past verification keep their status.
//
// Material of the routed sections is re-reserved where a reservation went
// missing; ready stock consumes it right away.
type ApprovePacketCommandHandler struct {
	uowFactory UoWFactory
}

func NewApprovePacketCommandHandler(uowFactory UoWFactory) ApprovePacketCommandHandler {
	return ApprovePacketCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ApprovePacketCommandHandler) Handle(ctx context.Context, cmd ApprovePacketCommand) error {
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

	if err = p.Approve(cmd.ActorID(), now); err != nil {
		return err
	}
	route := item.ApprovalRoute(cmd.IsReadyStock())
	advanced, err := item.ApprovePacket(p.SectionsIncluded(), route, p.Phase(), now)
	if err != nil {
		return err
	}
	if err = settleApprovedMaterial(ctx, uow, item, advanced, route, now); err != nil {
		return err
	}
	if err = uow.PacketRepository().Update(ctx, p); err != nil {
		return err
	}

	n := note{actor: cmd.ActorID().String(), details: routeSummary(route, advanced)}
	if err = saveItem(ctx, uow, item, timeline.ActionPacketApproved, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// settleApprovedMaterial makes sure approved sections hold their material.
func settleApprovedMaterial(
	ctx context.Context,
	uow stockScope,
	item *orderitem.OrderItem,
	sections []kernel.Section,
	route orderitem.Route,
	at time.Time,
) error {
	if len(sections) == 0 {
		return nil
	}
	if err := topUpReservations(ctx, uow, item, sections, at); err != nil {
		return err
	}
	if route == orderitem.RouteReadyStock {
		return consumeReservations(ctx, uow, item.ID(), sections, at)
	}
	return nil
}

func routeSummary(route orderitem.Route, sections []kernel.Section) string {
	target := "production"
	switch route {
	case orderitem.RouteDyeing:
		target = "dyeing"
	case orderitem.RouteReadyStock:
		target = "qa (ready stock)"
	}
	if len(sections) == 0 {
		return "no section awaited verification"
	}
	return fmt.Sprintf("%s to %s", strings.Join(kernel.SectionStrings(sections), ","), target)
}
