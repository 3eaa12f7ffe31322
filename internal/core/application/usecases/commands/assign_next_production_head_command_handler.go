package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/timeline"
	"fulfillment/internal/pkg/errs"
)

// ErrNoItemAwaitsHead is returned when no order item is eligible for a head.
var ErrNoItemAwaitsHead = errors.New("no order item awaits a production head")

type AssignNextProductionHeadCommandHandler struct {
	uowFactory UoWFactory
}

func NewAssignNextProductionHeadCommandHandler(uowFactory UoWFactory) AssignNextProductionHeadCommandHandler {
	return AssignNextProductionHeadCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *AssignNextProductionHeadCommandHandler) Handle(ctx context.Context, cmd AssignNextProductionHeadCommand) error {
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

	item, err := uow.OrderItemRepository().GetFirstEligibleForHead(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoItemAwaitsHead
	}
	if err != nil {
		return err
	}
	if err = assignNextHead(ctx, uow, item, timeline.SystemActor); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
