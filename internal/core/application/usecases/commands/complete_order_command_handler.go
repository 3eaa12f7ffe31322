package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/timeline"
	"fulfillment/internal/core/domain/services"
)

// CompleteOrderCommandHandler completes a dispatched order and cascades
// COMPLETED to its items and every one of their sections.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher services.OrderDispatcher
}

func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewOrderDispatcher(),
	}
}

func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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
	o, items, err := loadOrderWithItems(ctx, uow, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = h.dispatcher.Complete(o, items, now); err != nil {
		return err
	}
	if err = storeCascade(ctx, uow, o, items, timeline.ActionOrderCompleted, note{actor: cmd.ActorID().String()}, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
