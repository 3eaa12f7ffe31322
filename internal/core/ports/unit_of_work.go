package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repositories returned by it use the transaction started by Begin. Timeline
// entries appended inside the transaction are published after Commit succeeds.
type UnitOfWork interface {
	// Begin starts a new transaction. Calling it twice is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	OrderItemRepository() OrderItemRepository
	BOMRepository() BOMRepository
	InventoryRepository() InventoryRepository
	ReservationRepository() ReservationRepository
	DemandRepository() DemandRepository
	PacketRepository() PacketRepository
	ProductionHeadRepository() ProductionHeadRepository
	CursorRepository() CursorRepository
	TaskRepository() TaskRepository
	TimelineRepository() TimelineRepository
}
