package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/timeline"
)

// AddQAEvidenceCommandHandler moves a QA_PENDING section to READY_FOR_CLIENT_APPROVAL.
type AddQAEvidenceCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAddQAEvidenceCommandHandler(uowFactory OrderUoWFactory) AddQAEvidenceCommandHandler {
	return AddQAEvidenceCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *AddQAEvidenceCommandHandler) Handle(ctx context.Context, cmd AddQAEvidenceCommand) error {
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
	if err = item.AddQAEvidence(cmd.Section(), cmd.VideoURL(), cmd.ActorID(), now); err != nil {
		return err
	}

	n := note{actor: cmd.ActorID().String(), details: cmd.Section().String() + " " + cmd.VideoURL()}
	if err = saveItem(ctx, uow, item, timeline.ActionQAEvidenceAdded, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
