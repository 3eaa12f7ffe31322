// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order and order item repositories within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
		OrderItemRepository() ports.OrderItemRepository
	}

	// CatalogRepoFactory provides access to the master data repositories within a transaction.
	CatalogRepoFactory interface {
		BOMRepository() ports.BOMRepository
		InventoryRepository() ports.InventoryRepository
		ProductionHeadRepository() ports.ProductionHeadRepository
	}

	// StockRepoFactory provides access to reservations and procurement demands.
	StockRepoFactory interface {
		ReservationRepository() ports.ReservationRepository
		DemandRepository() ports.DemandRepository
	}

	// WorkflowRepoFactory provides access to packets, the head cursor and production tasks.
	WorkflowRepoFactory interface {
		PacketRepository() ports.PacketRepository
		CursorRepository() ports.CursorRepository
		TaskRepository() ports.TaskRepository
	}

	// TimelineRepoFactory provides access to the audit trail within a transaction.
	TimelineRepoFactory interface {
		TimelineRepository() ports.TimelineRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify orders, their items and the timeline.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		TimelineRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CatalogUoW manages transactions for master data: BOMs, stock items and production heads.
	CatalogUoW interface {
		TxManager
		CatalogRepoFactory
	}

	// CatalogUoWFactory creates new catalog unit of work instances.
	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	// UoW manages transactions across every aggregate of the workflow.
	// Used for commands that move sections and touch stock, packets or tasks.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   item, err := uow.OrderItemRepository().Get(ctx, itemID)
	//   packet, err := uow.PacketRepository().GetByOrderItem(ctx, itemID)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		CatalogRepoFactory
		StockRepoFactory
		WorkflowRepoFactory
		TimelineRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// Function adapters let a storage adapter's factory serve every unit of work shape.
//
// Example:
//
//	factory := memory.NewUnitOfWorkFactory(store, publisher, logger)
//	uows := commands.UoWFactoryFunc(func() commands.UoW { return factory.Create() })
type (
	OrderUoWFactoryFunc   func() OrderUoW
	CatalogUoWFactoryFunc func() CatalogUoW
	UoWFactoryFunc        func() UoW
)

func (f OrderUoWFactoryFunc) Create() OrderUoW     { return f() }
func (f CatalogUoWFactoryFunc) Create() CatalogUoW { return f() }
func (f UoWFactoryFunc) Create() UoW               { return f() }
