package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Customer is who the order is made for and where it goes.
type Customer struct {
	Name    string
	Phone   string
	Address string
}

// DispatchInfo is recorded when the order leaves with a courier.
type DispatchInfo struct {
	Courier        string
	TrackingNumber string
	DispatchedAt   time.Time
}

// State is the persisted form of an Order.
type State struct {
	ID          kernel.UUID
	Customer    Customer
	TotalAmount int64
	Payments    []Payment
	Status      Status
	FwdDate     *time.Time
	Urgent      bool
	Dispatch    *DispatchInfo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Order represents a customer order. It is the aggregate root for payments,
// urgency and the dispatch workflow. Its items live in their own aggregate
// and are tied to the order by OrderID.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a customer name
//   - The paid amount never exceeds the total amount
//   - Dispatch needs courier, tracking number and dispatch date
//   - Dispatched and Completed are never overwritten by item status changes
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customer holds contact and destination details
	customer Customer

	// totalAmount is the order value in minor currency units
	totalAmount int64

	// payments are the amounts received so far
	payments []Payment

	// status is the current state in the order lifecycle
	status Status

	// fwdDate is the promised delivery date, if any
	fwdDate *time.Time

	// urgent flags orders whose fwdDate is close
	urgent bool

	// dispatch is set once the order is dispatched
	dispatch *DispatchInfo

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates a new Order instance with validation.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - customer: Contact details, the name is mandatory
//   - totalAmount: Order value in minor units (must not be negative)
//   - fwdDate: Promised delivery date, optional
//   - now: Creation time
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), order.Customer{Name: "Ayesha"}, 250000, &fwd, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
//
// The order starts in Received status without payments.
func NewOrder(id kernel.UUID, customer Customer, totalAmount int64, fwdDate *time.Time, now time.Time) (*Order, error) {
	order := &Order{
		status:        Received,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomer(customer),
		order.setTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}
	if fwdDate != nil {
		fwd := *fwdDate
		order.fwdDate = &fwd
	}

	return order, nil
}

// RestoreOrder rebuilds an order from persistence.
func RestoreOrder(state State) (*Order, error) {
	if err := errors.Join(state.ID.Validate(), state.Status.Validate()); err != nil {
		return nil, err
	}

	order := &Order{
		id:            state.ID,
		customer:      state.Customer,
		totalAmount:   state.TotalAmount,
		payments:      slices.Clone(state.Payments),
		status:        state.Status,
		urgent:        state.Urgent,
		createdAt:     state.CreatedAt,
		updatedAt:     state.UpdatedAt,
		isConstructed: true,
	}
	if state.FwdDate != nil {
		fwd := *state.FwdDate
		order.fwdDate = &fwd
	}
	if state.Dispatch != nil {
		d := *state.Dispatch
		order.dispatch = &d
	}
	return order, nil
}

// State returns a copy suitable for persistence.
func (o *Order) State() State {
	state := State{
		ID:          o.id,
		Customer:    o.customer,
		TotalAmount: o.totalAmount,
		Payments:    slices.Clone(o.payments),
		Status:      o.status,
		FwdDate:     o.FwdDate(),
		Urgent:      o.urgent,
		Dispatch:    o.Dispatch(),
		CreatedAt:   o.createdAt,
		UpdatedAt:   o.updatedAt,
	}
	return state
}

// Validate ensures the Order instance was properly constructed.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed if the order was not created via NewOrder
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Customer returns the contact and destination details.
func (o *Order) Customer() Customer {
	return o.customer
}

// TotalAmount returns the order value in minor units.
func (o *Order) TotalAmount() int64 {
	return o.totalAmount
}

// PaidAmount returns the sum of all payments.
func (o *Order) PaidAmount() int64 {
	var paid int64
	for _, p := range o.payments {
		paid += p.Amount
	}
	return paid
}

// Balance returns the amount still due.
func (o *Order) Balance() int64 {
	return o.totalAmount - o.PaidAmount()
}

// Payments returns the recorded payments in the order they were received.
func (o *Order) Payments() []Payment {
	return slices.Clone(o.payments)
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// FwdDate returns the promised delivery date or nil.
func (o *Order) FwdDate() *time.Time {
	if o.fwdDate == nil {
		return nil
	}
	fwd := *o.fwdDate
	return &fwd
}

// IsUrgent reports the last computed urgency flag.
func (o *Order) IsUrgent() bool {
	return o.urgent
}

// Dispatch returns the dispatch details, nil until dispatched.
func (o *Order) Dispatch() *DispatchInfo {
	if o.dispatch == nil {
		return nil
	}
	d := *o.dispatch
	return &d
}

func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// RecordPayment appends a payment.
//
// This method enforces the following business rules:
//   - The payment must have been built by NewPayment
//   - The paid total may not exceed the order total
//   - Closed orders still accept payments (balance collected on delivery)
func (o *Order) RecordPayment(p Payment, now time.Time) error {
	if err := p.ID.Validate(); err != nil {
		return err
	}
	if p.Amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is not greater than 0", p.Amount))
	}
	if balance := o.Balance(); p.Amount > balance {
		return errs.NewValueIsOutOfRangeError("amount", p.Amount, int64(1), balance)
	}

	o.payments = append(o.payments, p)
	o.updatedAt = now
	return nil
}

// SyncItems re-derives the workshop status from the current item statuses.
// It reports whether the status changed.
func (o *Order) SyncItems(items []orderitem.Status, now time.Time) bool {
	next := o.status.Derive(items)
	if next == o.status {
		return false
	}
	o.status = next
	o.updatedAt = now
	return true
}

// RefreshUrgency flags the order when its fwdDate falls within window from now.
// Closed orders and orders without a fwdDate are never urgent. It reports
// whether the flag changed.
func (o *Order) RefreshUrgency(now time.Time, window time.Duration) bool {
	urgent := o.fwdDate != nil && !o.status.IsClosed() && !o.fwdDate.After(now.Add(window))
	if urgent == o.urgent {
		return false
	}
	o.urgent = urgent
	o.updatedAt = now
	return true
}

// MarkDispatched moves the order to Dispatched.
//
// This method enforces the following business rules:
//   - The order must be ReadyForDispatch
//   - Courier and tracking number are mandatory
//   - Dispatch date must be set
//
// Example:
//
//	err := o.MarkDispatched("TCS", "TRK-1001", time.Now(), time.Now())
//	if err != nil {
//	    // Handle validation or state conflict
//	}
//
// The caller cascades the dispatch to every item of the order.
func (o *Order) MarkDispatched(courier, trackingNumber string, dispatchedAt, now time.Time) error {
	courier = strings.TrimSpace(courier)
	trackingNumber = strings.TrimSpace(trackingNumber)
	if err := errors.Join(
		requireText("courier", courier),
		requireText("tracking number", trackingNumber),
		requireDate("dispatch date", dispatchedAt),
	); err != nil {
		return err
	}

	newStatus, err := o.status.Dispatch()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.urgent = false
	o.dispatch = &DispatchInfo{
		Courier:        courier,
		TrackingNumber: trackingNumber,
		DispatchedAt:   dispatchedAt,
	}
	o.updatedAt = now
	return nil
}

// Complete marks the order as delivered.
//
// This method enforces the following business rules:
//   - The order must be in Dispatched status
//   - Completed is a final state with no further transitions
func (o *Order) Complete(now time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomer trims and validates contact details. Only the name is mandatory.
func (o *Order) setCustomer(c Customer) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	if err := requireText("customer name", c.Name); err != nil {
		return err
	}
	o.customer = c
	return nil
}

// setTotalAmount validates and sets the order total.
func (o *Order) setTotalAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total amount", fmt.Errorf("%d is negative", amount))
	}
	o.totalAmount = amount
	return nil
}

func requireText(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

func requireDate(param string, value time.Time) error {
	if value.IsZero() {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
