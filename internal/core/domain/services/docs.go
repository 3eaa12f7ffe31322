// Package services provides domain services that coordinate several aggregates
// of the fulfillment model.
//
// The package includes:
//   - InventoryMatcher: matches a bill of materials against stock and
//     consolidates material requirements per inventory item
//   - OrderDispatcher: moves an order and all of its items through dispatch
//     and completion
//
// Both services are pure: they mutate the aggregates they are given and never
// touch persistence.
package services
