package errs

import (
	"fmt"
	"strings"
)

// StateConflictError reports an operation attempted from a status that forbids it.
// Required always lists the statuses the operation accepts.
type StateConflictError struct {
	Entity   string
	Current  string
	Required []string
}

func NewStateConflictError(entity, current string, required ...string) *StateConflictError {
	return &StateConflictError{
		Entity:   entity,
		Current:  current,
		Required: required,
	}
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("%s: %s is %s, required %s",
		ErrStateConflict, e.Entity, e.Current, strings.Join(e.Required, " or "))
}

func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}
