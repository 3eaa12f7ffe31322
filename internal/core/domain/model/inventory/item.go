package inventory

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("inventory Item must be created via NewItem constructor")

// Item is a stock keeping unit. Available stock is OnHand minus Reserved;
// reservations never drive it below zero.
type Item struct {
	id            kernel.UUID
	name          string
	unit          string
	rackLocation  string
	onHand        float64
	reserved      float64
	isConstructed bool
}

func NewItem(id kernel.UUID, name, unit, rackLocation string, onHand float64) (*Item, error) {
	item := &Item{isConstructed: true}

	var nameErr, unitErr, qtyErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if strings.TrimSpace(unit) == "" {
		unitErr = errs.NewValueIsRequiredError("unit")
	}
	if onHand < 0 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("on hand", fmt.Errorf("%v is negative", onHand))
	}
	if err := errors.Join(id.Validate(), nameErr, unitErr, qtyErr); err != nil {
		return nil, err
	}

	item.id = id
	item.name = strings.TrimSpace(name)
	item.unit = strings.TrimSpace(unit)
	item.rackLocation = strings.TrimSpace(rackLocation)
	item.onHand = kernel.RoundQuantity(onHand)
	return item, nil
}

func RestoreItem(id kernel.UUID, name, unit, rackLocation string, onHand, reserved float64) *Item {
	return &Item{
		id:            id,
		name:          name,
		unit:          unit,
		rackLocation:  rackLocation,
		onHand:        onHand,
		reserved:      reserved,
		isConstructed: true,
	}
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID      { return i.id }
func (i *Item) Name() string         { return i.name }
func (i *Item) Unit() string         { return i.unit }
func (i *Item) RackLocation() string { return i.rackLocation }
func (i *Item) OnHand() float64      { return i.onHand }
func (i *Item) Reserved() float64    { return i.reserved }

func (i *Item) Available() float64 {
	return kernel.RoundQuantity(i.onHand - i.reserved)
}

// Receive books incoming stock.
func (i *Item) Receive(qty float64) error {
	if err := positive("received quantity", qty); err != nil {
		return err
	}
	i.onHand = kernel.RoundQuantity(i.onHand + qty)
	return nil
}

// Reserve earmarks qty for an order item section.
func (i *Item) Reserve(qty float64) error {
	if err := positive("reserved quantity", qty); err != nil {
		return err
	}
	if qty > i.Available() {
		return errs.NewIncompletePreconditionError("insufficient stock",
			fmt.Sprintf("%s: required %v, available %v", i.name, qty, i.Available()))
	}
	i.reserved = kernel.RoundQuantity(i.reserved + qty)
	return nil
}

// Release returns a reservation to available stock.
func (i *Item) Release(qty float64) error {
	if err := positive("released quantity", qty); err != nil {
		return err
	}
	if qty > i.reserved {
		return errs.NewValueIsOutOfRangeError("released quantity", qty, 0, i.reserved)
	}
	i.reserved = kernel.RoundQuantity(i.reserved - qty)
	return nil
}

// Consume removes reserved stock from the shelf when production starts.
func (i *Item) Consume(qty float64) error {
	if err := positive("consumed quantity", qty); err != nil {
		return err
	}
	if qty > i.reserved || qty > i.onHand {
		return errs.NewValueIsOutOfRangeError("consumed quantity", qty, 0, i.reserved)
	}
	i.reserved = kernel.RoundQuantity(i.reserved - qty)
	i.onHand = kernel.RoundQuantity(i.onHand - qty)
	return nil
}

func positive(param string, qty float64) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%v is not greater than 0", qty))
	}
	return nil
}
