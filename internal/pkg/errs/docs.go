// Package errs holds the error taxonomy shared by the domain, the use cases
// and the adapters.
//
// Every kind pairs a sentinel with a struct carrying the details:
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange for bad input
//   - ErrObjectNotFound for unknown identifiers
//   - ErrStateConflict for transitions attempted from the wrong status
//   - ErrIncompletePrecondition for transitions blocked by listed items
//   - ErrVersionIsInvalid for concurrent writes to the same aggregate
//
// Struct errors unwrap to their sentinel, so callers classify with errors.Is
// and read details with errors.As. The HTTP adapter maps each kind to a status.
package errs
