package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrApprovePacketCommandIsNotConstructed = errors.New(
	"ApprovePacketCommand must be created via NewApprovePacketCommand constructor",
)

// ApprovePacketCommand accepts a completed packet. With isReadyStock the
// sections skip dyeing and production and go straight to QA.
type ApprovePacketCommand struct { //nolint:recvcheck //using for validation
	orderItemID  kernel.UUID
	isReadyStock bool
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

func NewApprovePacketCommand(orderItemID kernel.UUID, isReadyStock bool, actorID kernel.UUID) (ApprovePacketCommand, error) {
	if err := errors.Join(orderItemID.Validate(), actorID.Validate()); err != nil {
		return ApprovePacketCommand{}, err
	}
	return ApprovePacketCommand{
		orderItemID:  orderItemID,
		isReadyStock: isReadyStock,
		actorID:      actorID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c ApprovePacketCommand) Validate() error {
	return c.guard.Validate(ErrApprovePacketCommandIsNotConstructed)
}

func (c ApprovePacketCommand) OrderItemID() kernel.UUID { return c.orderItemID }
func (c ApprovePacketCommand) IsReadyStock() bool       { return c.isReadyStock }
func (c ApprovePacketCommand) ActorID() kernel.UUID     { return c.actorID }
