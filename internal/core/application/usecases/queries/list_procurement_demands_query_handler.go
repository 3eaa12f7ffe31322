package queries

import (
	"context"
)

// ListProcurementDemandsQueryHandler answers ListProcurementDemandsQuery.
// Rows come oldest first so that buyers work through the queue in order.
type ListProcurementDemandsQueryHandler struct {
	reader ProcurementDemandReader
}

func NewListProcurementDemandsQueryHandler(reader ProcurementDemandReader) ListProcurementDemandsQueryHandler {
	return ListProcurementDemandsQueryHandler{reader: reader}
}

func (h ListProcurementDemandsQueryHandler) Handle(
	ctx context.Context,
	query ListProcurementDemandsQuery,
) ([]ProcurementDemandResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.ProcurementDemands(ctx)
}
