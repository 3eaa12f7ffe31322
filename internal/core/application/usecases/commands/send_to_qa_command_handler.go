package commands

import (
	"context"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timeline"
)

// SendToQACommandHandler moves PRODUCTION_COMPLETED sections to QA_PENDING.
type SendToQACommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSendToQACommandHandler(uowFactory OrderUoWFactory) SendToQACommandHandler {
	return SendToQACommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SendToQACommandHandler) Handle(ctx context.Context, cmd SendToQACommand) error {
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
	if err = item.SendToQA(cmd.Sections(), now); err != nil {
		return err
	}

	n := note{actor: cmd.ActorID().String(), details: strings.Join(kernel.SectionStrings(cmd.Sections()), ",")}
	if err = saveItem(ctx, uow, item, timeline.ActionSentToQA, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
