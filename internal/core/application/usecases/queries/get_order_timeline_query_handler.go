package queries

import (
	"context"
)

type GetOrderTimelineQueryHandler struct {
	reader TimelineReader
}

func NewGetOrderTimelineQueryHandler(reader TimelineReader) GetOrderTimelineQueryHandler {
	return GetOrderTimelineQueryHandler{reader: reader}
}

// Handle returns the entries of the order, oldest first. An unknown order
// yields an empty list.
func (h GetOrderTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTimelineQuery,
) ([]TimelineEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.OrderTimeline(ctx, query.OrderID())
}
