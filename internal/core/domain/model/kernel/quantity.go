package kernel

import "math"

// quantityScale keeps four decimal places for material quantities.
const quantityScale = 10000

// RoundQuantity trims floating point noise from material arithmetic.
func RoundQuantity(q float64) float64 {
	return math.Round(q*quantityScale) / quantityScale
}
