package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/production"
)

// ProductionHeadRepository defines the persistence contract for production heads.
type ProductionHeadRepository interface {
	Add(ctx context.Context, head *production.Head) error

	// ListAll returns every head, active or not.
	ListAll(ctx context.Context) ([]*production.Head, error)
}

// CursorRepository stores the head rotation cursor.
type CursorRepository interface {
	// GetForUpdate returns the cursor and locks it until the transaction ends.
	// A missing cursor is returned as production.NewCursor().
	GetForUpdate(ctx context.Context) (production.Cursor, error)
	Update(ctx context.Context, cursor production.Cursor) error
}

// TaskRepository defines the persistence contract for production tasks.
type TaskRepository interface {
	Add(ctx context.Context, task *production.Task) error
	Update(ctx context.Context, task *production.Task) error
	Get(ctx context.Context, id kernel.UUID) (*production.Task, error)

	// ListBySection returns the chain of a section ordered by sequence.
	ListBySection(ctx context.Context, orderItemID kernel.UUID, section kernel.Section) ([]*production.Task, error)
}
