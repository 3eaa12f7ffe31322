package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrStartPacketCommandIsNotConstructed = errors.New(
	"StartPacketCommand must be created via NewStartPacketCommand constructor",
)

// StartPacketCommand starts picking. The actor must be the assignee.
type StartPacketCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartPacketCommand(orderItemID, actorID kernel.UUID) (StartPacketCommand, error) {
	if err := errors.Join(orderItemID.Validate(), actorID.Validate()); err != nil {
		return StartPacketCommand{}, err
	}
	return StartPacketCommand{
		orderItemID: orderItemID,
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c StartPacketCommand) Validate() error {
	return c.guard.Validate(ErrStartPacketCommandIsNotConstructed)
}

func (c StartPacketCommand) OrderItemID() kernel.UUID { return c.orderItemID }
func (c StartPacketCommand) ActorID() kernel.UUID     { return c.actorID }
