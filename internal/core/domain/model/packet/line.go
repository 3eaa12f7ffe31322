package packet

import (
	"cmp"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/orderitem"
)

// Line is one pick-list entry: a quantity of an inventory item to fetch for a section.
type Line struct {
	ID              kernel.UUID
	InventoryItemID kernel.UUID
	ItemName        string
	Section         kernel.Section
	Required        float64
	Picked          float64
	Unit            string
	RackLocation    string
	IsPicked        bool
	Round           int
}

// LineSpec describes a line before it is added to a packet.
type LineSpec struct {
	InventoryItemID kernel.UUID
	ItemName        string
	Section         kernel.Section
	Required        float64
	Unit            string
	RackLocation    string
}

// LinesFor turns the per-section shares of the requirements into pick lines
// for the given sections, ordered by section and item name.
func LinesFor(requirements []orderitem.MaterialRequirement, sections []kernel.Section) []LineSpec {
	specs := make([]LineSpec, 0, len(requirements))
	for _, r := range requirements {
		for s, qty := range r.Shares {
			if !kernel.ContainsSection(sections, s) || qty <= 0 {
				continue
			}
			specs = append(specs, LineSpec{
				InventoryItemID: r.InventoryItemID,
				ItemName:        r.ItemName,
				Section:         s,
				Required:        qty,
				Unit:            r.Unit,
				RackLocation:    r.RackLocation,
			})
		}
	}

	slices.SortFunc(specs, func(a, b LineSpec) int {
		return cmp.Or(
			cmp.Compare(a.Section, b.Section),
			cmp.Compare(a.ItemName, b.ItemName),
			cmp.Compare(a.InventoryItemID.String(), b.InventoryItemID.String()),
		)
	})
	return specs
}

func (l *Line) reset() {
	l.Picked = 0
	l.IsPicked = false
}
