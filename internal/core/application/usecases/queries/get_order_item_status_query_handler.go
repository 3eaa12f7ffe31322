package queries

import (
	"context"
)

// GetOrderItemStatusQueryHandler answers GetOrderItemStatusQuery.
type GetOrderItemStatusQueryHandler struct {
	reader OrderItemStatusReader
}

func NewGetOrderItemStatusQueryHandler(reader OrderItemStatusReader) GetOrderItemStatusQueryHandler {
	return GetOrderItemStatusQueryHandler{reader: reader}
}

func (h GetOrderItemStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderItemStatusQuery,
) (GetOrderItemStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderItemStatusQueryResponse{}, err
	}
	return h.reader.OrderItemStatus(ctx, query.OrderItemID())
}
