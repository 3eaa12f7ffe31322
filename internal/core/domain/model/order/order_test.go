package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, total int64, fwd *time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), order.Customer{Name: "Ayesha Khan", Phone: "+92 300 0000000"}, total, fwd, now)
	require.NoError(t, err)
	return o
}

func readyForDispatch(t *testing.T) *order.Order {
	t.Helper()
	o := newOrder(t, 1000, nil)
	require.True(t, o.SyncItems([]orderitem.Status{orderitem.ClientApproved}, now))
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create valid order with all valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()
		fwd := now.Add(72 * time.Hour)

		o, err := order.NewOrder(id, order.Customer{Name: "  Ayesha  "}, 250000, &fwd, now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "Ayesha", o.Customer().Name)
		assert.Equal(t, int64(250000), o.TotalAmount())
		assert.Equal(t, order.Received, o.Status())
		assert.Equal(t, fwd, *o.FwdDate())
		assert.Nil(t, o.Dispatch())
		assert.Zero(t, o.PaidAmount())
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, order.Customer{}, -1, nil, now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "customer name")
		assert.Contains(t, err.Error(), "total amount")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_RecordPayment(t *testing.T) {
	o := newOrder(t, 1000, nil)

	p, err := order.NewPayment(kernel.NewUUID(), 600, "cash", "", now)
	require.NoError(t, err)
	require.NoError(t, o.RecordPayment(p, now))
	assert.Equal(t, int64(600), o.PaidAmount())
	assert.Equal(t, int64(400), o.Balance())

	over, err := order.NewPayment(kernel.NewUUID(), 401, "card", "INV-7", now)
	require.NoError(t, err)
	require.ErrorIs(t, o.RecordPayment(over, now), errs.ErrValueIsOutOfRange)
	assert.Len(t, o.Payments(), 1)

	_, err = order.NewPayment(kernel.NewUUID(), 0, "cash", "", now)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = order.NewPayment(kernel.NewUUID(), 10, " ", "", now)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestOrder_SyncItems(t *testing.T) {
	o := newOrder(t, 0, nil)

	assert.False(t, o.SyncItems([]orderitem.Status{orderitem.InventoryCheck}, now))
	assert.Equal(t, order.Received, o.Status())

	assert.True(t, o.SyncItems([]orderitem.Status{orderitem.InventoryCheck, orderitem.InDyeing}, now))
	assert.Equal(t, order.InProgress, o.Status())

	assert.True(t, o.SyncItems([]orderitem.Status{orderitem.ClientApproved, orderitem.ClientApproved}, now))
	assert.Equal(t, order.ReadyForDispatch, o.Status())
}

func TestOrder_Dispatch(t *testing.T) {
	t.Run("requires courier, tracking number and date", func(t *testing.T) {
		o := readyForDispatch(t)

		err := o.MarkDispatched("", "", time.Time{}, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "courier")
		assert.Contains(t, err.Error(), "tracking number")
		assert.Contains(t, err.Error(), "dispatch date")
		assert.Equal(t, order.ReadyForDispatch, o.Status())
	})

	t.Run("requires ready for dispatch", func(t *testing.T) {
		o := newOrder(t, 0, nil)

		err := o.MarkDispatched("TCS", "TRK-1", now, now)

		var conflict *errs.StateConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, []string{"READY_FOR_DISPATCH"}, conflict.Required)
	})

	t.Run("dispatch then complete", func(t *testing.T) {
		o := readyForDispatch(t)

		require.ErrorIs(t, o.Complete(now), errs.ErrStateConflict)
		require.NoError(t, o.MarkDispatched("TCS", "TRK-1", now, now))
		assert.Equal(t, order.Dispatched, o.Status())
		assert.Equal(t, "TRK-1", o.Dispatch().TrackingNumber)

		assert.False(t, o.SyncItems([]orderitem.Status{orderitem.InDyeing}, now))
		assert.Equal(t, order.Dispatched, o.Status())

		require.NoError(t, o.Complete(now))
		assert.Equal(t, order.Completed, o.Status())
	})
}

func TestOrder_RefreshUrgency(t *testing.T) {
	window := 48 * time.Hour
	soon := now.Add(24 * time.Hour)
	later := now.Add(10 * 24 * time.Hour)

	o := newOrder(t, 0, &soon)
	assert.True(t, o.RefreshUrgency(now, window))
	assert.True(t, o.IsUrgent())
	assert.False(t, o.RefreshUrgency(now, window))

	relaxed := newOrder(t, 0, &later)
	assert.False(t, relaxed.RefreshUrgency(now, window))
	assert.False(t, relaxed.IsUrgent())

	noDate := newOrder(t, 0, nil)
	assert.False(t, noDate.RefreshUrgency(now, window))

	dispatched := readyForDispatch(t)
	require.NoError(t, dispatched.MarkDispatched("TCS", "TRK-2", now, now))
	assert.False(t, dispatched.RefreshUrgency(now, window))
}

func TestRestoreOrder(t *testing.T) {
	o := readyForDispatch(t)
	require.NoError(t, o.MarkDispatched("Leopards", "LP-9", now, now))

	restored, err := order.RestoreOrder(o.State())

	require.NoError(t, err)
	assert.Equal(t, o.State(), restored.State())

	_, err = order.RestoreOrder(order.State{ID: kernel.NewUUID()})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
