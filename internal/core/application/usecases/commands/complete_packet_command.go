package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCompletePacketCommandIsNotConstructed = errors.New(
	"CompletePacketCommand must be created via NewCompletePacketCommand constructor",
)

// CompletePacketCommand finishes picking and sends the round's sections to verification.
type CompletePacketCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompletePacketCommand(orderItemID, actorID kernel.UUID) (CompletePacketCommand, error) {
	if err := errors.Join(orderItemID.Validate(), actorID.Validate()); err != nil {
		return CompletePacketCommand{}, err
	}
	return CompletePacketCommand{
		orderItemID: orderItemID,
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CompletePacketCommand) Validate() error {
	return c.guard.Validate(ErrCompletePacketCommandIsNotConstructed)
}

func (c CompletePacketCommand) OrderItemID() kernel.UUID { return c.orderItemID }
func (c CompletePacketCommand) ActorID() kernel.UUID     { return c.actorID }
