package inventory

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Demand records a shortage that needs external replenishment.
type Demand struct {
	ID              kernel.UUID
	OrderItemID     kernel.UUID
	InventoryItemID kernel.UUID
	ItemName        string
	Unit            string
	Required        float64
	Available       float64
	Shortage        float64
	CreatedAt       time.Time
}
