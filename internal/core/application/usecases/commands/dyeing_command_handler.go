package commands

import (
	"context"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timeline"
)

type DyeingCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDyeingCommandHandler(uowFactory OrderUoWFactory) DyeingCommandHandler {
	return DyeingCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *DyeingCommandHandler) Handle(ctx context.Context, cmd DyeingCommand) error {
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

	var action timeline.Action
	switch cmd.Step() {
	case DyeingAccept:
		action, err = timeline.ActionDyeingAccepted, item.AcceptDyeing(cmd.WorkerID(), cmd.Sections(), now)
	case DyeingStart:
		action, err = timeline.ActionDyeingStarted, item.StartDyeing(cmd.WorkerID(), cmd.Sections(), now)
	case DyeingComplete:
		action, err = timeline.ActionDyeingCompleted, item.CompleteDyeing(cmd.WorkerID(), cmd.Sections(), now)
	}
	if err != nil {
		return err
	}

	n := note{actor: cmd.WorkerID().String(), details: strings.Join(kernel.SectionStrings(cmd.Sections()), ",")}
	if err = saveItem(ctx, uow, item, action, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
