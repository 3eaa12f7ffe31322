package commands

import (
	"context"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timeline"
)

// RecordClientApprovalCommandHandler moves sections to CLIENT_APPROVED. The order
// becomes READY_FOR_DISPATCH once all of its items are client approved.
type RecordClientApprovalCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRecordClientApprovalCommandHandler(uowFactory OrderUoWFactory) RecordClientApprovalCommandHandler {
	return RecordClientApprovalCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *RecordClientApprovalCommandHandler) Handle(ctx context.Context, cmd RecordClientApprovalCommand) error {
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
	if err = item.RecordClientApproval(cmd.Sections(), now); err != nil {
		return err
	}

	n := note{actor: cmd.ActorID().String(), details: strings.Join(kernel.SectionStrings(cmd.Sections()), ",")}
	if err = saveItem(ctx, uow, item, timeline.ActionClientApproved, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
