// Package kernel holds the value objects shared by every aggregate of the
// fulfillment domain: identifiers and garment section names.
//
// Section names arrive from callers in any case and with stray whitespace;
// ParseSection normalizes them once at the boundary so the rest of the domain
// compares Section values directly.
package kernel
