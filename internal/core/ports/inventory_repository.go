package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for stock items.
type InventoryRepository interface {
	Add(ctx context.Context, item *inventory.Item) error
	Update(ctx context.Context, item *inventory.Item) error

	// Get retrieves one item locked for update.
	Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error)

	// GetMany retrieves and locks the given items in id order. Unknown ids are
	// left out of the result.
	GetMany(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*inventory.Item, error)
}

// ReservationRepository defines the persistence contract for stock reservations.
type ReservationRepository interface {
	Add(ctx context.Context, r *inventory.Reservation) error
	Update(ctx context.Context, r *inventory.Reservation) error

	// ListOpenByOrderItem returns the RESERVED reservations of an item.
	ListOpenByOrderItem(ctx context.Context, orderItemID kernel.UUID) ([]*inventory.Reservation, error)
}

// DemandRepository defines the persistence contract for procurement demands.
type DemandRepository interface {
	// DeleteByOrderItem removes every demand of an item.
	DeleteByOrderItem(ctx context.Context, orderItemID kernel.UUID) error
	Add(ctx context.Context, demand inventory.Demand) error
	ListByOrderItem(ctx context.Context, orderItemID kernel.UUID) ([]inventory.Demand, error)
}
