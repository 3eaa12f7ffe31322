package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/pkg/errs"
)

// ErrOrderHasNoItems is returned when an order without items is dispatched or
// completed. It is an IncompletePreconditionError.
var ErrOrderHasNoItems = errs.NewIncompletePreconditionError("order has no items")

// Shipment carries what the courier hand-over needs.
type Shipment struct {
	Courier        string
	TrackingNumber string
	DispatchedAt   time.Time
}

// OrderDispatcher is a domain service that moves an order and all of its items
// through dispatch and completion together.
//
// Business rules:
//   - every item must be client approved before the order is dispatched
//   - dispatch needs courier, tracking number and dispatch date
//   - completion closes every section of every item
//   - nothing is changed unless every aggregate accepts the transition
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher()
//	err := dispatcher.Dispatch(o, items, services.Shipment{
//	    Courier:        "TCS",
//	    TrackingNumber: "TRK-1001",
//	    DispatchedAt:   time.Now(),
//	}, time.Now())
type OrderDispatcher struct{}

// NewOrderDispatcher creates a new OrderDispatcher instance.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch marks the order and its items DISPATCHED.
func (d OrderDispatcher) Dispatch(o *order.Order, items []*orderitem.OrderItem, shipment Shipment, now time.Time) error {
	if err := d.validate(o, items); err != nil {
		return err
	}

	statuses := make([]orderitem.Status, 0, len(items))
	for _, item := range items {
		if item.Status() != orderitem.ClientApproved {
			return errs.NewStateConflictError("order item "+item.ID().String(), item.Status().String(),
				orderitem.ClientApproved.String())
		}
		statuses = append(statuses, item.Status())
	}
	o.SyncItems(statuses, now)

	if err := o.MarkDispatched(shipment.Courier, shipment.TrackingNumber, shipment.DispatchedAt, now); err != nil {
		return err
	}
	for _, item := range items {
		if err := item.MarkDispatched(now); err != nil {
			return err
		}
	}
	return nil
}

// Complete marks the order, its items and every section COMPLETED.
func (d OrderDispatcher) Complete(o *order.Order, items []*orderitem.OrderItem, now time.Time) error {
	if err := d.validate(o, items); err != nil {
		return err
	}

	for _, item := range items {
		if item.Status() != orderitem.Dispatched {
			return errs.NewStateConflictError("order item "+item.ID().String(), item.Status().String(),
				orderitem.Dispatched.String())
		}
	}
	if err := o.Complete(now); err != nil {
		return err
	}
	for _, item := range items {
		if err := item.Complete(now); err != nil {
			return err
		}
	}
	return nil
}

func (d OrderDispatcher) validate(o *order.Order, items []*orderitem.OrderItem) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if !item.OrderID().IsEqual(o.ID()) {
			return errs.NewValueIsInvalidError("order item " + item.ID().String() + " belongs to another order")
		}
	}
	return nil
}
