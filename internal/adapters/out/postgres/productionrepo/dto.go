// Package productionrepo persists production tasks and the head rotation
// cursor.
package productionrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/adapters/out/postgres/pgconv"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/production"
)

// TaskDTO is one step of a section's production chain.
type TaskDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderItemID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_tasks_chain"`
	Section     string    `gorm:"uniqueIndex:idx_tasks_chain"`
	Sequence    int       `gorm:"uniqueIndex:idx_tasks_chain"`
	Name        string
	WorkerID    uuid.UUID `gorm:"type:uuid;index"`
	Status      int
	StartedAt   *time.Time
	CompletedAt *time.Time
	Duration    time.Duration
	CreatedAt   time.Time
}

func (TaskDTO) TableName() string {
	return "production_tasks"
}

// CursorDTO is the single row holding the index of the last assigned head.
type CursorDTO struct {
	ID        int `gorm:"primaryKey;autoIncrement:false"`
	LastIndex int
}

func (CursorDTO) TableName() string {
	return "head_cursor"
}

const cursorRowID = 1

func taskFromDomain(t *production.Task) TaskDTO {
	state := t.State()
	return TaskDTO{
		ID:          state.ID.Bytes(),
		OrderItemID: state.OrderItemID.Bytes(),
		Section:     state.Section.String(),
		Sequence:    state.Sequence,
		Name:        state.Name,
		WorkerID:    state.WorkerID.Bytes(),
		Status:      int(state.Status),
		StartedAt:   state.StartedAt,
		CompletedAt: state.CompletedAt,
		Duration:    state.Duration,
		CreatedAt:   state.CreatedAt,
	}
}

func taskToDomain(dto TaskDTO) (*production.Task, error) {
	state := production.TaskState{
		Section:     kernel.Section(dto.Section),
		Sequence:    dto.Sequence,
		Name:        dto.Name,
		Status:      production.TaskStatus(dto.Status),
		StartedAt:   dto.StartedAt,
		CompletedAt: dto.CompletedAt,
		Duration:    dto.Duration,
		CreatedAt:   dto.CreatedAt,
	}

	var err error
	if state.ID, err = pgconv.ID(dto.ID); err != nil {
		return nil, err
	}
	if state.OrderItemID, err = pgconv.ID(dto.OrderItemID); err != nil {
		return nil, err
	}
	if state.WorkerID, err = pgconv.ID(dto.WorkerID); err != nil {
		return nil, err
	}
	return production.RestoreTask(state)
}
