package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCreatePacketCommandIsNotConstructed = errors.New(
	"CreatePacketCommand must be created via NewCreatePacketCommand constructor",
)

// CreatePacketCommand opens the pick list of an order item, or the next round of an approved partial packet.
type CreatePacketCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreatePacketCommand(orderItemID, actorID kernel.UUID) (CreatePacketCommand, error) {
	if err := errors.Join(orderItemID.Validate(), actorID.Validate()); err != nil {
		return CreatePacketCommand{}, err
	}
	return CreatePacketCommand{
		orderItemID: orderItemID,
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePacketCommand) Validate() error {
	return c.guard.Validate(ErrCreatePacketCommandIsNotConstructed)
}

func (c CreatePacketCommand) OrderItemID() kernel.UUID { return c.orderItemID }
func (c CreatePacketCommand) ActorID() kernel.UUID     { return c.actorID }
