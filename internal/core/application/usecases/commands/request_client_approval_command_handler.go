package commands

import (
	"context"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timeline"
)

// RequestClientApprovalCommandHandler moves sections to AWAITING_CLIENT_APPROVAL.
type RequestClientApprovalCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRequestClientApprovalCommandHandler(uowFactory OrderUoWFactory) RequestClientApprovalCommandHandler {
	return RequestClientApprovalCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *RequestClientApprovalCommandHandler) Handle(ctx context.Context, cmd RequestClientApprovalCommand) error {
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
	if err = item.RequestClientApproval(cmd.Sections(), now); err != nil {
		return err
	}

	n := note{actor: cmd.ActorID().String(), details: strings.Join(kernel.SectionStrings(cmd.Sections()), ",")}
	if err = saveItem(ctx, uow, item, timeline.ActionClientApprovalAsked, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
