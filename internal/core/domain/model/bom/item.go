package bom

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Item is one material line of a bill of materials.
type Item struct {
	InventoryItemID kernel.UUID
	QuantityPerUnit float64
	Unit            string
	Piece           kernel.Section
}

// NewItem validates a BOM line.
func NewItem(inventoryItemID kernel.UUID, quantityPerUnit float64, unit string, piece kernel.Section) (Item, error) {
	var qtyErr, unitErr error
	if quantityPerUnit <= 0 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity per unit",
			fmt.Errorf("%v is not greater than 0", quantityPerUnit))
	}
	if strings.TrimSpace(unit) == "" {
		unitErr = errs.NewValueIsRequiredError("unit")
	}

	if err := errors.Join(inventoryItemID.Validate(), qtyErr, unitErr, piece.Validate()); err != nil {
		return Item{}, err
	}

	return Item{
		InventoryItemID: inventoryItemID,
		QuantityPerUnit: quantityPerUnit,
		Unit:            strings.TrimSpace(unit),
		Piece:           piece,
	}, nil
}
