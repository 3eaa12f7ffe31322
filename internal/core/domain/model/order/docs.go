// Package order provides the Order aggregate root of the fulfillment service.
//
// The package includes:
//   - Order: customer details, payments, urgency and dispatch information
//   - Status: the order level state machine
//   - Payment: a single amount received against an order
//
// Key business rules:
//   - Received, InProgress and ReadyForDispatch are derived from item statuses
//   - Dispatch is only possible once every item is client approved
//   - Dispatched and Completed are explicit transitions and never re-derived
//   - Payments are kept in minor currency units and may not exceed the total
package order
