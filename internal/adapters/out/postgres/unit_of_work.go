// Package postgres provides the GORM-based Unit of Work and read model of the
// fulfillment service.
//
// A unit of work wraps one database transaction. Repositories handed out by
// it run inside that transaction and report every aggregate they write back
// to the unit of work. Timeline entries among them are published once the
// transaction commits.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/packetrepo"
	"fulfillment/internal/adapters/out/postgres/productionrepo"
	"fulfillment/internal/adapters/out/postgres/stockrepo"
	"fulfillment/internal/adapters/out/postgres/timelinerepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timeline"
	"fulfillment/internal/core/ports"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.TimelinePublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based units of work.
// A nil publisher disables publishing of timeline entries.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.TimelinePublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{db: db, publisher: publisher, logger: logger}
}

// Create produces a new UnitOfWork with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.TimelinePublisher
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice does not nest transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit finalizes the transaction, then publishes the timeline entries
// written in it. A failed publish is logged and does not undo the commit.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishTimeline(ctx)
	return nil
}

// Rollback discards the transaction and everything tracked in it.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after each successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) publishTimeline(ctx context.Context) {
	entries := make([]*timeline.Entry, 0)
	for _, tracked := range uow.trackedAggregates {
		if e, ok := tracked.Aggregate.(*timeline.Entry); ok {
			entries = append(entries, e)
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]

	if uow.publisher == nil || len(entries) == 0 {
		return
	}
	if err := uow.publisher.Publish(ctx, entries); err != nil {
		uow.logger.ErrorContext(ctx, "failed to publish timeline entries",
			slog.Int("count", len(entries)), slog.Any("error", err))
	}
}

// conn returns the transaction when one is open, otherwise the pool.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OrderItemRepository() ports.OrderItemRepository {
	return orderrepo.NewGormOrderItemRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) BOMRepository() ports.BOMRepository {
	return catalogrepo.NewGormBOMRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) InventoryRepository() ports.InventoryRepository {
	return catalogrepo.NewGormInventoryRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ReservationRepository() ports.ReservationRepository {
	return stockrepo.NewGormReservationRepository(uow.conn())
}

func (uow *GormUnitOfWork) DemandRepository() ports.DemandRepository {
	return stockrepo.NewGormDemandRepository(uow.conn())
}

func (uow *GormUnitOfWork) PacketRepository() ports.PacketRepository {
	return packetrepo.NewGormPacketRepository(uow.conn())
}

func (uow *GormUnitOfWork) ProductionHeadRepository() ports.ProductionHeadRepository {
	return catalogrepo.NewGormHeadRepository(uow.conn())
}

func (uow *GormUnitOfWork) CursorRepository() ports.CursorRepository {
	return productionrepo.NewGormCursorRepository(uow.conn())
}

func (uow *GormUnitOfWork) TaskRepository() ports.TaskRepository {
	return productionrepo.NewGormTaskRepository(uow.conn())
}

func (uow *GormUnitOfWork) TimelineRepository() ports.TimelineRepository {
	return timelinerepo.NewGormTimelineRepository(uow.conn(), uow)
}
