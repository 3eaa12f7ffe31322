package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRunInventoryCheckCommandIsNotConstructed = errors.New(
	"RunInventoryCheckCommand must be created via NewRunInventoryCheckCommand constructor",
)

// RunInventoryCheckCommand matches the open sections of an order item against
// stock. The same command re-checks an item after replenishment.
//
// Example:
//
//	cmd, err := NewRunInventoryCheckCommand(orderItemID, userID)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("inventory check failed: %w", err)
//	}
type RunInventoryCheckCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewRunInventoryCheckCommand creates the command. Both ids are required.
func NewRunInventoryCheckCommand(orderItemID, actorID kernel.UUID) (RunInventoryCheckCommand, error) {
	if err := errors.Join(orderItemID.Validate(), actorID.Validate()); err != nil {
		return RunInventoryCheckCommand{}, err
	}
	return RunInventoryCheckCommand{
		orderItemID: orderItemID,
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RunInventoryCheckCommand) Validate() error {
	return c.guard.Validate(ErrRunInventoryCheckCommandIsNotConstructed)
}

func (c RunInventoryCheckCommand) OrderItemID() kernel.UUID { return c.orderItemID }
func (c RunInventoryCheckCommand) ActorID() kernel.UUID     { return c.actorID }
