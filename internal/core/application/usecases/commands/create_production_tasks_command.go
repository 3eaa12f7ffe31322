package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/production"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateProductionTasksCommandIsNotConstructed = errors.New(
	"CreateProductionTasksCommand must be created via NewCreateProductionTasksCommand constructor",
)

// CreateProductionTasksCommand lays out the ordered production chain of one
// section. Steps run in the given order, each by its own worker.
type CreateProductionTasksCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	section     kernel.Section
	steps       []production.Step
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateProductionTasksCommand(
	orderItemID kernel.UUID,
	s kernel.Section,
	steps []production.Step,
	actorID kernel.UUID,
) (CreateProductionTasksCommand, error) {
	var stepsErr error
	if len(steps) == 0 {
		stepsErr = errs.NewValueIsRequiredError("tasks")
	}
	if err := errors.Join(orderItemID.Validate(), actorID.Validate(), s.Validate(), stepsErr); err != nil {
		return CreateProductionTasksCommand{}, err
	}
	return CreateProductionTasksCommand{
		orderItemID: orderItemID,
		section:     s,
		steps:       steps,
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateProductionTasksCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductionTasksCommandIsNotConstructed)
}

func (c CreateProductionTasksCommand) OrderItemID() kernel.UUID { return c.orderItemID }
func (c CreateProductionTasksCommand) Section() kernel.Section  { return c.section }
func (c CreateProductionTasksCommand) Steps() []production.Step { return c.steps }
func (c CreateProductionTasksCommand) ActorID() kernel.UUID     { return c.actorID }
