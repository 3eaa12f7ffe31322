// Package guard lets value objects, commands and queries detect that they were
// built as a zero value instead of through their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded by types that must only be produced by a constructor.
// The zero value is "not constructed".
//
// Example:
//
//	type RunInventoryCheckCommand struct {
//	    orderItemID kernel.UUID
//	    guard       guard.ConstructorGuard
//	}
//
//	func (c RunInventoryCheckCommand) Validate() error {
//	    return c.guard.Validate(ErrRunInventoryCheckCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
