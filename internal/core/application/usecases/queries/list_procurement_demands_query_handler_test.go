package queries_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDemandReader struct{ mock.Mock }

func (m *MockDemandReader) ProcurementDemands(ctx context.Context) ([]queries.ProcurementDemandResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.ProcurementDemandResponse), args.Error(1)
}

type MockTimelineReader struct{ mock.Mock }

func (m *MockTimelineReader) OrderTimeline(ctx context.Context, orderID kernel.UUID) ([]queries.TimelineEntryResponse, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.TimelineEntryResponse), args.Error(1)
}

func TestListProcurementDemandsQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	rows := []queries.ProcurementDemandResponse{{
		OrderItemID:     kernel.NewUUID(),
		InventoryItemID: kernel.NewUUID(),
		ItemName:        "Silk",
		Unit:            "m",
		Required:        3,
		Available:       1,
		Shortage:        2,
	}}

	reader := new(MockDemandReader)
	reader.On("ProcurementDemands", ctx).Return(rows, nil).Once()

	got, err := queries.NewListProcurementDemandsQueryHandler(reader).Handle(ctx, queries.NewListProcurementDemandsQuery())
	require.NoError(t, err)
	assert.Equal(t, rows, got)
	reader.AssertExpectations(t)
}

func TestListProcurementDemandsQueryHandler_Handle_ReaderError(t *testing.T) {
	ctx := t.Context()
	reader := new(MockDemandReader)
	reader.On("ProcurementDemands", ctx).Return(nil, errors.New("connection reset")).Once()

	_, err := queries.NewListProcurementDemandsQueryHandler(reader).Handle(ctx, queries.NewListProcurementDemandsQuery())
	require.Error(t, err)
}

func TestListProcurementDemandsQueryHandler_Handle_NotConstructed(t *testing.T) {
	reader := new(MockDemandReader)
	_, err := queries.NewListProcurementDemandsQueryHandler(reader).Handle(t.Context(), queries.ListProcurementDemandsQuery{})
	require.ErrorIs(t, err, queries.ErrListProcurementDemandsQueryIsNotConstructed)
}

func TestGetOrderTimelineQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	entries := []queries.TimelineEntryResponse{
		{ID: kernel.NewUUID(), Action: "order_created", Actor: "u-1"},
		{ID: kernel.NewUUID(), Action: "inventory_checked", Actor: "u-1"},
	}

	reader := new(MockTimelineReader)
	reader.On("OrderTimeline", ctx, orderID).Return(entries, nil).Once()

	query, err := queries.NewGetOrderTimelineQuery(orderID)
	require.NoError(t, err)

	got, err := queries.NewGetOrderTimelineQueryHandler(reader).Handle(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
	reader.AssertExpectations(t)
}
