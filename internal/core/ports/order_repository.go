// Package ports defines the persistence contracts of the fulfillment domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/orderitem"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order and locks it for the rest of the transaction.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListOpen returns every order that is neither dispatched nor completed.
	ListOpen(ctx context.Context) ([]*order.Order, error)
}

// OrderItemRepository defines the persistence contract for order item aggregates.
//
// Every read-modify-write of an item is serialized: Get locks the row for the
// rest of the transaction and Update fails with a VersionIsInvalidError when
// the stored version moved since the item was read.
type OrderItemRepository interface {
	Add(ctx context.Context, aggregate *orderitem.OrderItem) error
	Update(ctx context.Context, aggregate *orderitem.OrderItem) error
	Get(ctx context.Context, id kernel.UUID) (*orderitem.OrderItem, error)

	// ListByOrder returns the items of an order ordered by creation time,
	// locked for the rest of the unit of work.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*orderitem.OrderItem, error)

	// ReadByOrder returns the items of an order like ListByOrder without
	// locking them. Callers that already hold one item and the order row use
	// it to see the siblings, so items are never locked after their order.
	ReadByOrder(ctx context.Context, orderID kernel.UUID) ([]*orderitem.OrderItem, error)

	// GetFirstEligibleForHead returns the oldest item waiting for a production
	// head, or an ObjectNotFoundError.
	GetFirstEligibleForHead(ctx context.Context) (*orderitem.OrderItem, error)
}
