package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReceiveStockCommandIsNotConstructed = errors.New(
	"ReceiveStockCommand must be created via NewReceiveStockCommand constructor",
)

// ReceiveStockCommand books a delivery of material onto the shelf. Items that
// wait for it are re-checked with RunInventoryCheck.
type ReceiveStockCommand struct { //nolint:recvcheck //using for validation
	inventoryItemID kernel.UUID
	quantity        float64

	guard guard.ConstructorGuard
}

func NewReceiveStockCommand(inventoryItemID kernel.UUID, quantity float64) (ReceiveStockCommand, error) {
	var qtyErr error
	if quantity <= 0 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%v is not greater than 0", quantity))
	}
	if err := errors.Join(inventoryItemID.Validate(), qtyErr); err != nil {
		return ReceiveStockCommand{}, err
	}
	return ReceiveStockCommand{
		inventoryItemID: inventoryItemID,
		quantity:        quantity,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c ReceiveStockCommand) Validate() error {
	return c.guard.Validate(ErrReceiveStockCommandIsNotConstructed)
}

func (c ReceiveStockCommand) InventoryItemID() kernel.UUID { return c.inventoryItemID }
func (c ReceiveStockCommand) Quantity() float64            { return c.quantity }
