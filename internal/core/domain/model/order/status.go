package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Received ──> InProgress ──> ReadyForDispatch ──> Dispatched ──> Completed
//
// Received, InProgress and ReadyForDispatch are derived from the statuses of
// the order's items. Dispatched and Completed are set explicitly by the
// dispatch workflow and are never re-derived.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Received is the intake status: no item has left inventory check yet.
	Received

	// InProgress means at least one item is being worked on.
	InProgress

	// ReadyForDispatch means every item is client approved.
	ReadyForDispatch

	// Dispatched means the order left with a courier.
	Dispatched

	// Completed is the final state.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "UNKNOWN",
		Received:         "RECEIVED",
		InProgress:       "IN_PROGRESS",
		ReadyForDispatch: "READY_FOR_DISPATCH",
		Dispatched:       "DISPATCHED",
		Completed:        "COMPLETED",
	}
}

// Validate checks if the Status value is valid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
func (s Status) Validate() error {
	if s <= Unknown || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ParseStatus converts a persisted or user supplied name into a Status.
func ParseStatus(raw string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	for s, str := range getStatusStrings() {
		if s != Unknown && str == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", raw))
}

// IsClosed reports whether the order already left the workshop.
func (s Status) IsClosed() bool {
	return s == Dispatched || s == Completed
}

// Derive computes the workshop status from the item statuses.
//
// Rules:
//   - a closed status is kept as is
//   - every item client approved -> ReadyForDispatch
//   - every item still in inventory check -> Received
//   - anything else -> InProgress
func (s Status) Derive(items []orderitem.Status) Status {
	if s.IsClosed() {
		return s
	}
	if len(items) == 0 {
		return Received
	}

	approved, received := true, true
	for _, item := range items {
		if item != orderitem.ClientApproved {
			approved = false
		}
		if item != orderitem.InventoryCheck {
			received = false
		}
	}

	switch {
	case approved:
		return ReadyForDispatch
	case received:
		return Received
	default:
		return InProgress
	}
}

// Dispatch transitions the status to Dispatched.
//
// Valid transitions:
//   - ReadyForDispatch -> Dispatched
//
// Returns:
//   - (Dispatched, nil) on valid transition
//   - (Unknown, StateConflictError) otherwise
func (s Status) Dispatch() (Status, error) {
	if s != ReadyForDispatch {
		return Unknown, errs.NewStateConflictError("order", s.String(), ReadyForDispatch.String())
	}
	return Dispatched, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Dispatched -> Completed
//
// Completed is a final state with no further transitions possible.
func (s Status) Complete() (Status, error) {
	if s != Dispatched {
		return Unknown, errs.NewStateConflictError("order", s.String(), Dispatched.String())
	}
	return Completed, nil
}
