package inventory

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ReservationStatus tracks what happened to earmarked stock.
type ReservationStatus int

const (
	ReservationUnknown ReservationStatus = iota
	ReservationReserved
	ReservationReleased
	ReservationConsumed
)

func (s ReservationStatus) String() string {
	switch s {
	case ReservationReserved:
		return "RESERVED"
	case ReservationReleased:
		return "RELEASED"
	case ReservationConsumed:
		return "CONSUMED"
	default:
		return "UNKNOWN"
	}
}

// Reservation is stock earmarked for one section of one order item.
type Reservation struct {
	id              kernel.UUID
	orderItemID     kernel.UUID
	inventoryItemID kernel.UUID
	section         kernel.Section
	quantity        float64
	status          ReservationStatus
	createdAt       time.Time
	closedAt        *time.Time
}

// Reserve books qty on stock and returns the matching reservation record.
func Reserve(stock *Item, orderItemID kernel.UUID, s kernel.Section, qty float64, now time.Time) (*Reservation, error) {
	if err := stock.Validate(); err != nil {
		return nil, err
	}
	if err := stock.Reserve(qty); err != nil {
		return nil, err
	}
	return &Reservation{
		id:              kernel.NewUUID(),
		orderItemID:     orderItemID,
		inventoryItemID: stock.ID(),
		section:         s,
		quantity:        kernel.RoundQuantity(qty),
		status:          ReservationReserved,
		createdAt:       now,
	}, nil
}

func RestoreReservation(
	id, orderItemID, inventoryItemID kernel.UUID,
	s kernel.Section,
	quantity float64,
	status ReservationStatus,
	createdAt time.Time,
	closedAt *time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		orderItemID:     orderItemID,
		inventoryItemID: inventoryItemID,
		section:         s,
		quantity:        quantity,
		status:          status,
		createdAt:       createdAt,
		closedAt:        closedAt,
	}
}

func (r *Reservation) ID() kernel.UUID              { return r.id }
func (r *Reservation) OrderItemID() kernel.UUID     { return r.orderItemID }
func (r *Reservation) InventoryItemID() kernel.UUID { return r.inventoryItemID }
func (r *Reservation) Section() kernel.Section      { return r.section }
func (r *Reservation) Quantity() float64            { return r.quantity }
func (r *Reservation) Status() ReservationStatus    { return r.status }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
func (r *Reservation) ClosedAt() *time.Time         { return r.closedAt }

func (r *Reservation) IsOpen() bool {
	return r.status == ReservationReserved
}

// Release gives the quantity back to stock.
func (r *Reservation) Release(stock *Item, now time.Time) error {
	if err := r.checkOpen(stock); err != nil {
		return err
	}
	if err := stock.Release(r.quantity); err != nil {
		return err
	}
	r.status = ReservationReleased
	r.closedAt = &now
	return nil
}

// Consume takes the quantity off the shelf.
func (r *Reservation) Consume(stock *Item, now time.Time) error {
	if err := r.checkOpen(stock); err != nil {
		return err
	}
	if err := stock.Consume(r.quantity); err != nil {
		return err
	}
	r.status = ReservationConsumed
	r.closedAt = &now
	return nil
}

func (r *Reservation) checkOpen(stock *Item) error {
	if !r.IsOpen() {
		return errs.NewStateConflictError("reservation", r.status.String(), ReservationReserved.String())
	}
	if err := stock.Validate(); err != nil {
		return err
	}
	if !stock.ID().IsEqual(r.inventoryItemID) {
		return errs.NewValueIsInvalidErrorWithCause("stock",
			fmt.Errorf("reservation %s belongs to %s", r.id, r.inventoryItemID))
	}
	return nil
}
