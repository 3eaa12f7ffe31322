package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignProductionHeadCommandIsNotConstructed = errors.New(
	"AssignProductionHeadCommand must be created via NewAssignProductionHeadCommand constructor",
)

// AssignProductionHeadCommand hands an order item to the next production head in rotation.
type AssignProductionHeadCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignProductionHeadCommand(orderItemID, actorID kernel.UUID) (AssignProductionHeadCommand, error) {
	if err := errors.Join(orderItemID.Validate(), actorID.Validate()); err != nil {
		return AssignProductionHeadCommand{}, err
	}
	return AssignProductionHeadCommand{
		orderItemID: orderItemID,
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AssignProductionHeadCommand) Validate() error {
	return c.guard.Validate(ErrAssignProductionHeadCommandIsNotConstructed)
}

func (c AssignProductionHeadCommand) OrderItemID() kernel.UUID { return c.orderItemID }
func (c AssignProductionHeadCommand) ActorID() kernel.UUID     { return c.actorID }
