package queries

import (
	"context"
)

type GetOrderItemWorkQueryHandler struct {
	reader OrderItemWorkReader
}

func NewGetOrderItemWorkQueryHandler(reader OrderItemWorkReader) GetOrderItemWorkQueryHandler {
	return GetOrderItemWorkQueryHandler{reader: reader}
}

func (h GetOrderItemWorkQueryHandler) Handle(
	ctx context.Context,
	query GetOrderItemWorkQuery,
) (GetOrderItemWorkQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderItemWorkQueryResponse{}, err
	}
	return h.reader.OrderItemWork(ctx, query.OrderItemID())
}
