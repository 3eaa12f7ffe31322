package errs

import (
	"fmt"
	"strings"
)

// IncompletePreconditionError enumerates the items that block an operation,
// e.g. the unpicked lines of a packet.
type IncompletePreconditionError struct {
	Reason string
	Items  []string
}

func NewIncompletePreconditionError(reason string, items ...string) *IncompletePreconditionError {
	return &IncompletePreconditionError{
		Reason: reason,
		Items:  items,
	}
}

func (e *IncompletePreconditionError) Error() string {
	if len(e.Items) == 0 {
		return fmt.Sprintf("%s: %s", ErrIncompletePrecondition, e.Reason)
	}
	return fmt.Sprintf("%s: %s [%s]", ErrIncompletePrecondition, e.Reason, strings.Join(e.Items, ", "))
}

func (e *IncompletePreconditionError) Unwrap() error {
	return ErrIncompletePrecondition
}
