package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPickPacketItemCommandIsNotConstructed = errors.New(
	"PickPacketItemCommand must be created via NewPickPacketItemCommand constructor",
)

// PickPacketItemCommand marks one pick line as taken from the rack.
type PickPacketItemCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	lineID      kernel.UUID
	quantity    float64
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewPickPacketItemCommand(orderItemID, lineID kernel.UUID, quantity float64, actorID kernel.UUID) (PickPacketItemCommand, error) {
	var qtyErr error
	if quantity <= 0 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("picked quantity", fmt.Errorf("%v is not greater than 0", quantity))
	}
	if err := errors.Join(orderItemID.Validate(), lineID.Validate(), actorID.Validate(), qtyErr); err != nil {
		return PickPacketItemCommand{}, err
	}
	return PickPacketItemCommand{
		orderItemID: orderItemID,
		lineID:      lineID,
		quantity:    quantity,
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c PickPacketItemCommand) Validate() error {
	return c.guard.Validate(ErrPickPacketItemCommandIsNotConstructed)
}

func (c PickPacketItemCommand) OrderItemID() kernel.UUID { return c.orderItemID }
func (c PickPacketItemCommand) LineID() kernel.UUID      { return c.lineID }
func (c PickPacketItemCommand) Quantity() float64        { return c.quantity }
func (c PickPacketItemCommand) ActorID() kernel.UUID     { return c.actorID }
