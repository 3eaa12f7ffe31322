// Package packet models the material-picking packet of an order item: its
// pick list, the rounds in which sections join it and the verification
// outcome of each round.
package packet
