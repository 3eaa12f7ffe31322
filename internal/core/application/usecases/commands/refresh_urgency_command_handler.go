package commands

import (
	"context"
	"strconv"

	"fulfillment/internal/core/domain/model/timeline"
)

// RefreshUrgencyCommandHandler recomputes the urgent flag of every open order
// in a single transaction and records each flag change on the timeline.
type RefreshUrgencyCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRefreshUrgencyCommandHandler(uowFactory OrderUoWFactory) RefreshUrgencyCommandHandler {
	return RefreshUrgencyCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *RefreshUrgencyCommandHandler) Handle(ctx context.Context, cmd RefreshUrgencyCommand) error {
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
	orders, err := uow.OrderRepository().ListOpen(ctx)
	if err != nil {
		return err
	}

	for _, o := range orders {
		if !o.RefreshUrgency(now, cmd.Window()) {
			continue
		}
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return err
		}
		n := note{actor: timeline.SystemActor, details: "urgent=" + strconv.FormatBool(o.IsUrgent())}
		if err = appendEntry(ctx, uow.TimelineRepository(), o.ID(), nil, timeline.ActionOrderUrgencyChanged, n, now); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
