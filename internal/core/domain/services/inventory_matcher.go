package services

import (
	"cmp"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/bom"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/pkg/errs"
)

// MatchResult is the outcome of matching a bill of materials against stock.
type MatchResult struct {
	// Requirements are consolidated per inventory item, ordered by item name then id.
	Requirements []orderitem.MaterialRequirement

	// Short lists, sorted, every section that needs at least one short material.
	Short []kernel.Section
}

// Share is the quantity of one inventory item a single section needs.
type Share struct {
	InventoryItemID kernel.UUID
	Section         kernel.Section
	Quantity        float64
}

// SufficientShares returns the per-section quantities of every sufficient
// requirement, in requirement order. These are the amounts to reserve.
func (r MatchResult) SufficientShares() []Share {
	shares := make([]Share, 0, len(r.Requirements))
	for _, req := range r.Requirements {
		if req.Availability != orderitem.Sufficient {
			continue
		}
		sections := make([]kernel.Section, 0, len(req.Shares))
		for s := range req.Shares {
			sections = append(sections, s)
		}
		for _, s := range kernel.SortSections(sections) {
			shares = append(shares, Share{InventoryItemID: req.InventoryItemID, Section: s, Quantity: req.Shares[s]})
		}
	}
	return shares
}

// Demands builds one procurement demand per shortage line.
func (r MatchResult) Demands(orderItemID kernel.UUID, now time.Time) []inventory.Demand {
	demands := make([]inventory.Demand, 0)
	for _, req := range r.Requirements {
		if req.Availability != orderitem.Shortage {
			continue
		}
		demands = append(demands, inventory.Demand{
			ID:              kernel.NewUUID(),
			OrderItemID:     orderItemID,
			InventoryItemID: req.InventoryItemID,
			ItemName:        req.ItemName,
			Unit:            req.Unit,
			Required:        req.Required,
			Available:       req.Available,
			Shortage:        req.Shortage,
			CreatedAt:       now,
		})
	}
	return demands
}

// InventoryMatcher is a domain service that turns a bill of materials into
// consolidated material requirements for the open sections of an order item
// and classifies each one against available stock.
//
// Algorithm:
//   - keep only BOM lines whose piece is one of the sections
//   - consolidate by inventory item, summing quantityPerUnit × quantity
//     and keeping the share of each section
//   - shortage = max(0, required − available); classify SUFFICIENT or SHORTAGE
//
// Example usage:
//
//	matcher := services.NewInventoryMatcher()
//	result, err := matcher.Match(openSections, activeBOM.Items(), item.Quantity(), stock)
//	if err != nil {
//	    // a BOM line points to an unknown inventory item
//	}
//
// The matcher is pure. Releasing and reserving stock is up to the caller.
type InventoryMatcher struct{}

func NewInventoryMatcher() InventoryMatcher {
	return InventoryMatcher{}
}

// Match computes the requirements. An empty BOM yields an empty result.
func (m InventoryMatcher) Match(
	sections []kernel.Section,
	lines []bom.Item,
	quantity int,
	stock map[kernel.UUID]*inventory.Item,
) (MatchResult, error) {
	if quantity <= 0 {
		return MatchResult{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	byItem := make(map[kernel.UUID]*orderitem.MaterialRequirement)
	for _, line := range lines {
		if !kernel.ContainsSection(sections, line.Piece) {
			continue
		}

		req, ok := byItem[line.InventoryItemID]
		if !ok {
			item, found := stock[line.InventoryItemID]
			if !found || item == nil {
				return MatchResult{}, errs.NewObjectNotFoundError("inventory item", line.InventoryItemID.String())
			}
			req = &orderitem.MaterialRequirement{
				InventoryItemID: line.InventoryItemID,
				ItemName:        item.Name(),
				Unit:            item.Unit(),
				RackLocation:    item.RackLocation(),
				Shares:          make(map[kernel.Section]float64),
			}
			byItem[line.InventoryItemID] = req
		}

		need := line.QuantityPerUnit * float64(quantity)
		req.Required = kernel.RoundQuantity(req.Required + need)
		req.Shares[line.Piece] = kernel.RoundQuantity(req.Shares[line.Piece] + need)
	}

	result := MatchResult{Requirements: make([]orderitem.MaterialRequirement, 0, len(byItem))}
	short := make(map[kernel.Section]struct{})
	for id, req := range byItem {
		req.Available = kernel.RoundQuantity(stock[id].Available())
		req.Shortage = kernel.RoundQuantity(max(0, req.Required-req.Available))
		req.Availability = orderitem.Sufficient
		if req.Shortage > 0 {
			req.Availability = orderitem.Shortage
			for s := range req.Shares {
				short[s] = struct{}{}
			}
		}
		result.Requirements = append(result.Requirements, *req)
	}

	slices.SortFunc(result.Requirements, func(a, b orderitem.MaterialRequirement) int {
		return cmp.Or(cmp.Compare(a.ItemName, b.ItemName), cmp.Compare(a.InventoryItemID.String(), b.InventoryItemID.String()))
	})
	for s := range short {
		result.Short = append(result.Short, s)
	}
	kernel.SortSections(result.Short)
	return result, nil
}
