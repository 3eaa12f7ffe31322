package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/timeline"
	"fulfillment/internal/pkg/errs"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, entries []*timeline.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), order.Customer{Name: "Sana Malik"}, 30_000, nil, time.Now())
	require.NoError(t, err)
	return o
}

func newEntry(t *testing.T, orderID kernel.UUID) *timeline.Entry {
	t.Helper()
	e, err := timeline.NewEntry(orderID, nil, timeline.ActionOrderCreated, "system", "", time.Now())
	require.NoError(t, err)
	return &e
}

func TestUnitOfWork_CommitMakesChangesVisible(t *testing.T) {
	ctx := t.Context()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), nil, nil)
	o := newOrder(t)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.Commit(ctx))

	other := factory.Create()
	require.NoError(t, other.Begin(ctx))
	defer func() { _ = other.Rollback(ctx) }()

	got, err := other.OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)
	assert.True(t, got.IsEqual(o))
}

func TestUnitOfWork_RollbackDiscardsChanges(t *testing.T) {
	ctx := t.Context()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), nil, nil)
	o := newOrder(t)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.Rollback(ctx))

	other := factory.Create()
	require.NoError(t, other.Begin(ctx))
	defer func() { _ = other.Rollback(ctx) }()

	_, err := other.OrderRepository().Get(ctx, o.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUnitOfWork_WithoutTransaction(t *testing.T) {
	ctx := t.Context()
	uow := memory.NewUnitOfWorkFactory(memory.NewStore(), nil, nil).Create()

	require.ErrorIs(t, uow.Commit(ctx), memory.ErrNoTransaction)
	require.ErrorIs(t, uow.Rollback(ctx), memory.ErrNoTransaction)

	_, err := uow.OrderRepository().Get(ctx, kernel.NewUUID())
	require.ErrorIs(t, err, memory.ErrNoTransaction)
}

func TestUnitOfWork_BeginWaitsForStore(t *testing.T) {
	ctx := t.Context()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), nil, nil)

	holder := factory.Create()
	require.NoError(t, holder.Begin(ctx))
	require.NoError(t, holder.Begin(ctx), "second Begin on the same unit is a no-op")

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, factory.Create().Begin(waitCtx), context.DeadlineExceeded)

	require.NoError(t, holder.Rollback(ctx))
	next := factory.Create()
	require.NoError(t, next.Begin(ctx))
	require.NoError(t, next.Rollback(ctx))
}

func TestUnitOfWork_StaleItemVersion(t *testing.T) {
	ctx := t.Context()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), nil, nil)
	o := newOrder(t)
	item, err := orderitem.NewOrderItem(kernel.NewUUID(), o.ID(), orderitem.Spec{
		ProductID:  kernel.NewUUID(),
		Size:       "M",
		Quantity:   1,
		BasePieces: []kernel.Section{kernel.Shirt},
	}, time.Now())
	require.NoError(t, err)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.OrderItemRepository().Add(ctx, item))
	require.NoError(t, uow.Commit(ctx))

	uow = factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	first, err := uow.OrderItemRepository().Get(ctx, item.ID())
	require.NoError(t, err)
	second, err := uow.OrderItemRepository().Get(ctx, item.ID())
	require.NoError(t, err)

	require.NoError(t, uow.OrderItemRepository().Update(ctx, first))
	assert.Equal(t, second.Version()+1, first.Version())
	require.ErrorIs(t, uow.OrderItemRepository().Update(ctx, second), errs.ErrVersionIsInvalid)
}

func TestUnitOfWork_PublishesAfterCommit(t *testing.T) {
	ctx := t.Context()
	publisher := &MockPublisher{}
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), publisher, nil)
	o := newOrder(t)
	entry := newEntry(t, o.ID())

	publisher.On("Publish", mock.Anything, []*timeline.Entry{entry}).Return(nil).Once()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.TimelineRepository().Append(ctx, entry))
	require.NoError(t, uow.Commit(ctx))

	rolledBack := factory.Create()
	require.NoError(t, rolledBack.Begin(ctx))
	require.NoError(t, rolledBack.TimelineRepository().Append(ctx, newEntry(t, o.ID())))
	require.NoError(t, rolledBack.Rollback(ctx))

	publisher.AssertExpectations(t)
}

func TestUnitOfWork_PublishErrorKeepsCommit(t *testing.T) {
	ctx := t.Context()
	publisher := &MockPublisher{}
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), publisher, nil)
	o := newOrder(t)

	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker unavailable")).Once()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.TimelineRepository().Append(ctx, newEntry(t, o.ID())))
	require.NoError(t, uow.Commit(ctx))

	reader := factory.Create()
	require.NoError(t, reader.Begin(ctx))
	defer func() { _ = reader.Rollback(ctx) }()
	entries, err := reader.TimelineRepository().ListByOrder(ctx, o.ID())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	publisher.AssertExpectations(t)
}
