package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/production"
	"fulfillment/internal/core/domain/model/timeline"
	"fulfillment/internal/pkg/errs"
)

// CreateProductionTasksCommandHandler creates the task chain of a section,
// consumes its reserved material and leaves the section READY_FOR_PRODUCTION.
// The item must already have a production head.
type CreateProductionTasksCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateProductionTasksCommandHandler(uowFactory UoWFactory) CreateProductionTasksCommandHandler {
	return CreateProductionTasksCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateProductionTasksCommandHandler) Handle(ctx context.Context, cmd CreateProductionTasksCommand) error {
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

	existing, err := uow.TaskRepository().ListBySection(ctx, item.ID(), cmd.Section())
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return errs.NewStateConflictError("production tasks of "+cmd.Section().String(),
			fmt.Sprintf("%d created", len(existing)), "none")
	}

	if err = item.PrepareProduction(cmd.Section(), now); err != nil {
		return err
	}
	chain, err := production.NewChain(item.ID(), cmd.Section(), cmd.Steps(), now)
	if err != nil {
		return err
	}
	for _, t := range chain {
		if err = uow.TaskRepository().Add(ctx, t); err != nil {
			return err
		}
	}
	if err = consumeReservations(ctx, uow, item.ID(), []kernel.Section{cmd.Section()}, now); err != nil {
		return err
	}

	n := note{actor: cmd.ActorID().String(), details: fmt.Sprintf("%s: %d task(s)", cmd.Section(), len(chain))}
	if err = saveItem(ctx, uow, item, timeline.ActionTasksCreated, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
