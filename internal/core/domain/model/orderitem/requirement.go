package orderitem

import (
	"maps"

	"fulfillment/internal/core/domain/model/kernel"
)

// Availability classifies one consolidated material requirement.
type Availability string

const (
	Sufficient Availability = "SUFFICIENT"
	Shortage   Availability = "SHORTAGE"
)

// MaterialRequirement is one consolidated line of the last inventory check.
// Shares splits Required across the sections that need the material.
type MaterialRequirement struct {
	InventoryItemID kernel.UUID
	ItemName        string
	Unit            string
	RackLocation    string
	Required        float64
	Available       float64
	Shortage        float64
	Availability    Availability
	Shares          map[kernel.Section]float64
}

// Clone deep-copies the requirement.
func (r MaterialRequirement) Clone() MaterialRequirement {
	out := r
	out.Shares = make(map[kernel.Section]float64, len(r.Shares))
	maps.Copy(out.Shares, r.Shares)
	return out
}

func cloneRequirements(in []MaterialRequirement) []MaterialRequirement {
	if in == nil {
		return nil
	}
	out := make([]MaterialRequirement, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
