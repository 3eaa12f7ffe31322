package queries

import (
	"errors"
	"maps"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderItemStatusQueryIsNotConstructed = errors.New(
	"GetOrderItemStatusQuery must be created via NewGetOrderItemStatusQuery constructor",
)

// GetOrderItemStatusQuery reads the aggregated status of an order item
// together with the status of every section.
//
// Example:
//
//	query, err := NewGetOrderItemStatusQuery(itemID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetOrderItemStatusQuery struct {
	orderItemID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderItemStatusQuery(orderItemID kernel.UUID) (GetOrderItemStatusQuery, error) {
	if err := orderItemID.Validate(); err != nil {
		return GetOrderItemStatusQuery{}, err
	}
	return GetOrderItemStatusQuery{orderItemID: orderItemID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderItemStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderItemStatusQueryIsNotConstructed)
}

func (q GetOrderItemStatusQuery) OrderItemID() kernel.UUID { return q.orderItemID }

// SectionStatusResponse is the state of one garment piece.
type SectionStatusResponse struct {
	Section   kernel.Section
	Status    string
	UpdatedAt time.Time
}

// GetOrderItemStatusQueryResponse is the status view of an order item.
// Sections are sorted by name.
type GetOrderItemStatusQueryResponse struct {
	ID               kernel.UUID
	OrderID          kernel.UUID
	Status           string
	PacketPhase      string
	RequiresDyeing   bool
	ProductionHeadID *kernel.UUID
	Version          int
	UpdatedAt        time.Time
	Sections         []SectionStatusResponse
}

// OrderItemStatusFrom builds the view from a loaded aggregate.
func OrderItemStatusFrom(item *orderitem.OrderItem) GetOrderItemStatusQueryResponse {
	records := item.Sections()
	sections := make([]SectionStatusResponse, 0, len(records))
	for _, s := range slices.Sorted(maps.Keys(records)) {
		rec := records[s]
		sections = append(sections, SectionStatusResponse{Section: s, Status: rec.Status.String(), UpdatedAt: rec.UpdatedAt})
	}

	return GetOrderItemStatusQueryResponse{
		ID:               item.ID(),
		OrderID:          item.OrderID(),
		Status:           item.Status().String(),
		PacketPhase:      item.PacketPhase().String(),
		RequiresDyeing:   item.RequiresDyeing(),
		ProductionHeadID: item.ProductionHead(),
		Version:          item.Version(),
		UpdatedAt:        item.UpdatedAt(),
		Sections:         sections,
	}
}
