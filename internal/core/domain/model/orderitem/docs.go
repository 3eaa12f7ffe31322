// Package orderitem contains the OrderItem aggregate: one garment of an order
// with an independent workflow record per section.
//
// The item never stores a status of its own choosing. After every section or
// packet mutation it re-derives its status with Aggregate, a pure function of
// the section status multiset and the packet phase. The only exception is
// DISPATCHED, which the parent order sets and which holds until every section
// is COMPLETED.
//
// All mutating methods validate every affected section first and only then
// write, so a failed call leaves the item untouched.
package orderitem
