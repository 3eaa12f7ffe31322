package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/bom"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/timeline"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// RunInventoryCheckCommandHandler resolves the material of an order item.
//
// Within one transaction it:
//   - releases the open reservations of the sections being checked
//   - picks the custom BOM or the active BOM of (product, size)
//   - matches the BOM against locked stock
//   - replaces the procurement demands of the item
//   - reserves every sufficient share
//   - moves each checked section to CREATE_PACKET or AWAITING_MATERIAL
//
// Running it twice against unchanged stock gives the same demands,
// reservations and statuses.
type RunInventoryCheckCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.InventoryMatcher
}

// NewRunInventoryCheckCommandHandler creates the handler.
func NewRunInventoryCheckCommandHandler(uowFactory UoWFactory) RunInventoryCheckCommandHandler {
	return RunInventoryCheckCommandHandler{
		uowFactory: uowFactory,
		matcher:    services.NewInventoryMatcher(),
	}
}

// Handle runs the check for one order item.
func (h *RunInventoryCheckCommandHandler) Handle(ctx context.Context, cmd RunInventoryCheckCommand) error {
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

	var inPacket []kernel.Section
	if p != nil {
		inPacket = p.SectionsIncluded()
	}
	open, err := item.CheckableSections(inPacket)
	if err != nil {
		return err
	}

	if err = releaseReservations(ctx, uow, item.ID(), open, now); err != nil {
		return err
	}

	lines, err := h.bomLines(ctx, uow, item)
	if err != nil {
		return err
	}
	ids := make([]kernel.UUID, 0, len(lines))
	for _, l := range lines {
		if !slices.ContainsFunc(ids, l.InventoryItemID.IsEqual) {
			ids = append(ids, l.InventoryItemID)
		}
	}
	stock, err := uow.InventoryRepository().GetMany(ctx, kernel.SortUUIDs(ids))
	if err != nil {
		return err
	}

	result, err := h.matcher.Match(open, lines, item.Quantity(), stock)
	if err != nil {
		return err
	}

	if err = uow.DemandRepository().DeleteByOrderItem(ctx, item.ID()); err != nil {
		return err
	}
	for _, d := range result.Demands(item.ID(), now) {
		if err = uow.DemandRepository().Add(ctx, d); err != nil {
			return err
		}
	}
	if err = reserveShares(ctx, uow, item.ID(), result.SufficientShares(), stock, now); err != nil {
		return err
	}

	if err = item.ApplyInventoryCheck(open, result.Short, result.Requirements, now); err != nil {
		return err
	}

	n := note{actor: cmd.ActorID().String(), details: checkSummary(open, result)}
	if err = saveItem(ctx, uow, item, timeline.ActionInventoryChecked, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// bomLines returns the custom BOM of a custom sized item, otherwise the lines of
// the active BOM. A missing active BOM means nothing has to be matched.
func (h *RunInventoryCheckCommandHandler) bomLines(ctx context.Context, uow UoW, item *orderitem.OrderItem) ([]bom.Item, error) {
	if item.IsCustomSize() {
		return item.CustomBOM(), nil
	}

	active, err := uow.BOMRepository().GetActive(ctx, item.ProductID(), item.Size())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return active.Items(), nil
}

func checkSummary(open []kernel.Section, result services.MatchResult) string {
	short := "none"
	if len(result.Short) > 0 {
		short = strings.Join(kernel.SectionStrings(result.Short), ",")
	}
	return fmt.Sprintf("checked %s: %d requirement(s), short sections: %s",
		strings.Join(kernel.SectionStrings(open), ","), len(result.Requirements), short)
}
