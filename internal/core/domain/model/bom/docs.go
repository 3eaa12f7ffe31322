// Package bom provides the bill of materials aggregate.
//
// Key business rules:
//   - A BOM belongs to exactly one (product, size) pair
//   - Versions increase monotonically per (product, size)
//   - At most one BOM per (product, size) is active; activating one deactivates
//     its siblings and never BOMs of another size
//   - Made-to-measure items (size "custom") carry their own BOM lines instead
package bom
