package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_StringAndParse(t *testing.T) {
	for s := order.Received; s <= order.Completed; s++ {
		require.NoError(t, s.Validate())
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	assert.Equal(t, "UNKNOWN", order.Status(42).String())
	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	_, err := order.ParseStatus("shipped")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Derive(t *testing.T) {
	tests := []struct {
		name  string
		from  order.Status
		items []orderitem.Status
		want  order.Status
	}{
		{"no items", order.Received, nil, order.Received},
		{"all in inventory check", order.Received, []orderitem.Status{orderitem.InventoryCheck}, order.Received},
		{"one item moving", order.Received, []orderitem.Status{orderitem.InventoryCheck, orderitem.CreatePacket}, order.InProgress},
		{"all approved", order.InProgress, []orderitem.Status{orderitem.ClientApproved}, order.ReadyForDispatch},
		{"one approved", order.InProgress, []orderitem.Status{orderitem.ClientApproved, orderitem.QualityAssurance}, order.InProgress},
		{"dispatched is kept", order.Dispatched, []orderitem.Status{orderitem.InventoryCheck}, order.Dispatched},
		{"completed is kept", order.Completed, nil, order.Completed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Derive(tt.items))
		})
	}
}

func TestStatus_Transitions(t *testing.T) {
	next, err := order.ReadyForDispatch.Dispatch()
	require.NoError(t, err)
	assert.Equal(t, order.Dispatched, next)

	next, err = order.Dispatched.Complete()
	require.NoError(t, err)
	assert.Equal(t, order.Completed, next)

	for _, s := range []order.Status{order.Received, order.InProgress, order.Dispatched, order.Completed} {
		_, err := s.Dispatch()
		require.ErrorIs(t, err, errs.ErrStateConflict, s.String())
	}
	_, err = order.ReadyForDispatch.Complete()
	require.ErrorIs(t, err, errs.ErrStateConflict)
}
