package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/production"
	"fulfillment/internal/core/domain/model/section"
	"fulfillment/internal/core/domain/model/timeline"
)

// StartTaskCommandHandler starts a task. Starting the first task of a chain
// moves its section to IN_PRODUCTION.
type StartTaskCommandHandler struct {
	uowFactory UoWFactory
}

func NewStartTaskCommandHandler(uowFactory UoWFactory) StartTaskCommandHandler {
	return StartTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *StartTaskCommandHandler) Handle(ctx context.Context, cmd StartTaskCommand) error {
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
	task, err := uow.TaskRepository().Get(ctx, cmd.TaskID())
	if err != nil {
		return err
	}
	item, err := uow.OrderItemRepository().Get(ctx, task.OrderItemID())
	if err != nil {
		return err
	}

	if err = task.Start(cmd.WorkerID(), now); err != nil {
		return err
	}
	if rec, ok := item.Section(task.Section()); ok && rec.Status == section.ReadyForProduction {
		if err = item.StartProduction(task.Section(), now); err != nil {
			return err
		}
	}
	if err = uow.TaskRepository().Update(ctx, task); err != nil {
		return err
	}

	n := note{actor: cmd.WorkerID().String(), details: taskSummary(task)}
	if err = saveItem(ctx, uow, item, timeline.ActionTaskStarted, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// CompleteTaskCommandHandler completes a task and unblocks the next one. When
// the whole chain is done the section becomes PRODUCTION_COMPLETED.
type CompleteTaskCommandHandler struct {
	uowFactory UoWFactory
}

func NewCompleteTaskCommandHandler(uowFactory UoWFactory) CompleteTaskCommandHandler {
	return CompleteTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CompleteTaskCommandHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) error {
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
	task, err := uow.TaskRepository().Get(ctx, cmd.TaskID())
	if err != nil {
		return err
	}
	item, err := uow.OrderItemRepository().Get(ctx, task.OrderItemID())
	if err != nil {
		return err
	}
	chain, err := uow.TaskRepository().ListBySection(ctx, task.OrderItemID(), task.Section())
	if err != nil {
		return err
	}

	if err = task.Complete(cmd.WorkerID(), now); err != nil {
		return err
	}
	for i, t := range chain {
		if t.ID().IsEqual(task.ID()) {
			chain[i] = task
		}
	}
	next, done := production.Advance(chain, task)
	if done {
		if err = item.CompleteProduction(task.Section(), now); err != nil {
			return err
		}
	}

	if err = uow.TaskRepository().Update(ctx, task); err != nil {
		return err
	}
	if next != nil {
		if err = uow.TaskRepository().Update(ctx, next); err != nil {
			return err
		}
	}

	n := note{actor: cmd.WorkerID().String(), details: fmt.Sprintf("%s in %s", taskSummary(task), task.Duration())}
	if err = saveItem(ctx, uow, item, timeline.ActionTaskCompleted, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func taskSummary(t *production.Task) string {
	return fmt.Sprintf("%s #%d %s", t.Section(), t.Sequence(), t.Name())
}
