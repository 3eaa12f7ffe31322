package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListProcurementDemandsQueryIsNotConstructed = errors.New(
	"ListProcurementDemandsQuery must be created via NewListProcurementDemandsQuery constructor",
)

// ListProcurementDemandsQuery lists the material shortages that block order
// items, as recorded by their latest inventory check.
type ListProcurementDemandsQuery struct {
	guard guard.ConstructorGuard
}

func NewListProcurementDemandsQuery() ListProcurementDemandsQuery {
	return ListProcurementDemandsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListProcurementDemandsQuery) Validate() error {
	return q.guard.Validate(ErrListProcurementDemandsQueryIsNotConstructed)
}

// ProcurementDemandResponse is one shortage of one order item.
type ProcurementDemandResponse struct {
	OrderItemID     kernel.UUID
	OrderID         kernel.UUID
	InventoryItemID kernel.UUID
	ItemName        string
	Unit            string
	Required        float64
	Available       float64
	Shortage        float64
	CreatedAt       time.Time
}
