package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timeline"
)

// TimelineRepository stores the append-only audit trail.
type TimelineRepository interface {
	Append(ctx context.Context, entry *timeline.Entry) error

	// ListByOrder returns the entries of an order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*timeline.Entry, error)
}

// TimelinePublisher announces committed timeline entries to other services.
type TimelinePublisher interface {
	Publish(ctx context.Context, entries []*timeline.Entry) error
}
