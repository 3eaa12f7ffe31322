package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignPacketCommandIsNotConstructed = errors.New(
	"AssignPacketCommand must be created via NewAssignPacketCommand constructor",
)

// AssignPacketCommand gives the packet of an order item to a picker. The
// actor is recorded as the assigner.
type AssignPacketCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	assigneeID  kernel.UUID
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignPacketCommand(orderItemID, assigneeID, actorID kernel.UUID) (AssignPacketCommand, error) {
	if err := errors.Join(orderItemID.Validate(), assigneeID.Validate(), actorID.Validate()); err != nil {
		return AssignPacketCommand{}, err
	}
	return AssignPacketCommand{
		orderItemID: orderItemID,
		assigneeID:  assigneeID,
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AssignPacketCommand) Validate() error {
	return c.guard.Validate(ErrAssignPacketCommandIsNotConstructed)
}

func (c AssignPacketCommand) OrderItemID() kernel.UUID { return c.orderItemID }
func (c AssignPacketCommand) AssigneeID() kernel.UUID  { return c.assigneeID }
func (c AssignPacketCommand) ActorID() kernel.UUID     { return c.actorID }
