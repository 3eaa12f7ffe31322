package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateInventoryItemCommandIsNotConstructed = errors.New(
	"CreateInventoryItemCommand must be created via NewCreateInventoryItemCommand constructor",
)

// CreateInventoryItemCommand registers a stocked material.
type CreateInventoryItemCommand struct { //nolint:recvcheck //using for validation
	itemID       kernel.UUID
	name         string
	unit         string
	rackLocation string
	onHand       float64

	guard guard.ConstructorGuard
}

// NewCreateInventoryItemCommand only checks the id. Name, unit and quantity
// rules belong to inventory.NewItem.
func NewCreateInventoryItemCommand(
	itemID kernel.UUID,
	name, unit, rackLocation string,
	onHand float64,
) (CreateInventoryItemCommand, error) {
	if err := itemID.Validate(); err != nil {
		return CreateInventoryItemCommand{}, err
	}
	return CreateInventoryItemCommand{
		itemID:       itemID,
		name:         name,
		unit:         unit,
		rackLocation: rackLocation,
		onHand:       onHand,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateInventoryItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateInventoryItemCommandIsNotConstructed)
}

func (c CreateInventoryItemCommand) ItemID() kernel.UUID  { return c.itemID }
func (c CreateInventoryItemCommand) Name() string         { return c.name }
func (c CreateInventoryItemCommand) Unit() string         { return c.unit }
func (c CreateInventoryItemCommand) RackLocation() string { return c.rackLocation }
func (c CreateInventoryItemCommand) OnHand() float64      { return c.onHand }
