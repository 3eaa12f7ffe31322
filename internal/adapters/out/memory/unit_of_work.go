package memory

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/timeline"
	"fulfillment/internal/core/ports"
)

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store     *Store
	publisher ports.TimelinePublisher
	logger    *slog.Logger
}

// NewUnitOfWorkFactory returns a factory whose units of work hand committed
// timeline entries to publisher. A nil publisher disables publishing.
func NewUnitOfWorkFactory(store *Store, publisher ports.TimelinePublisher, logger *slog.Logger) *UnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &UnitOfWorkFactory{store: store, publisher: publisher, logger: logger}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store, publisher: f.publisher, logger: f.logger}
}

// UnitOfWork holds the store from Begin until Commit or Rollback.
type UnitOfWork struct {
	store     *Store
	publisher ports.TimelinePublisher
	logger    *slog.Logger

	tx       *data
	appended []*timeline.Entry
}

// Begin waits for the store and starts working on a private copy of it.
// Calling Begin twice on the same instance is a no-op.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return nil
	}
	if err := u.store.acquire(ctx); err != nil {
		return err
	}
	u.tx = u.store.data.clone()
	u.appended = nil
	return nil
}

// Commit makes the copy visible and publishes the entries appended in it.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	u.store.data = u.tx
	u.tx = nil
	u.store.release()

	entries := u.appended
	u.appended = nil
	if u.publisher == nil || len(entries) == 0 {
		return nil
	}
	if err := u.publisher.Publish(ctx, entries); err != nil {
		u.logger.ErrorContext(ctx, "failed to publish timeline entries",
			slog.Int("count", len(entries)), slog.Any("error", err))
	}
	return nil
}

// Rollback drops the copy.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	u.tx = nil
	u.appended = nil
	u.store.release()
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: u}
}

func (u *UnitOfWork) OrderItemRepository() ports.OrderItemRepository {
	return &orderItemRepository{uow: u}
}

func (u *UnitOfWork) BOMRepository() ports.BOMRepository {
	return &bomRepository{uow: u}
}

func (u *UnitOfWork) InventoryRepository() ports.InventoryRepository {
	return &inventoryRepository{uow: u}
}

func (u *UnitOfWork) ReservationRepository() ports.ReservationRepository {
	return &reservationRepository{uow: u}
}

func (u *UnitOfWork) DemandRepository() ports.DemandRepository {
	return &demandRepository{uow: u}
}

func (u *UnitOfWork) PacketRepository() ports.PacketRepository {
	return &packetRepository{uow: u}
}

func (u *UnitOfWork) ProductionHeadRepository() ports.ProductionHeadRepository {
	return &headRepository{uow: u}
}

func (u *UnitOfWork) CursorRepository() ports.CursorRepository {
	return &cursorRepository{uow: u}
}

func (u *UnitOfWork) TaskRepository() ports.TaskRepository {
	return &taskRepository{uow: u}
}

func (u *UnitOfWork) TimelineRepository() ports.TimelineRepository {
	return &timelineRepository{uow: u}
}

// working returns the working copy, or ErrNoTransaction.
func (u *UnitOfWork) working() (*data, error) {
	if u.tx == nil {
		return nil, ErrNoTransaction
	}
	return u.tx, nil
}
