// Package queries contains the read side: each query is answered by a reader
// that the storage adapter implements without loading aggregates for update.
package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

type (
	// OrderItemStatusReader returns the status view of one order item, or an
	// ObjectNotFoundError.
	OrderItemStatusReader interface {
		OrderItemStatus(ctx context.Context, orderItemID kernel.UUID) (GetOrderItemStatusQueryResponse, error)
	}

	// ProcurementDemandReader lists the open shortages recorded by inventory checks.
	ProcurementDemandReader interface {
		ProcurementDemands(ctx context.Context) ([]ProcurementDemandResponse, error)
	}

	// OrderItemWorkReader returns the packet and tasks of an existing order
	// item, or an ObjectNotFoundError for an unknown one.
	OrderItemWorkReader interface {
		OrderItemWork(ctx context.Context, orderItemID kernel.UUID) (GetOrderItemWorkQueryResponse, error)
	}

	// TimelineReader returns the audit trail of an order, oldest first.
	TimelineReader interface {
		OrderTimeline(ctx context.Context, orderID kernel.UUID) ([]TimelineEntryResponse, error)
	}
)
