package productionrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fulfillment/internal/adapters/out/postgres/pgconv"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/production"
)

// GormTaskRepository implements TaskRepository using GORM.
type GormTaskRepository struct {
	db *gorm.DB
}

func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) Add(ctx context.Context, task *production.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	dto := taskFromDomain(task)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormTaskRepository) Update(ctx context.Context, task *production.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto := taskFromDomain(task)
	result := r.db.WithContext(ctx).Model(&TaskDTO{}).Where("id = ?", dto.ID).
		Select("status", "started_at", "completed_at", "duration").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pgconv.NotFound(gorm.ErrRecordNotFound, "task", task.ID().String())
	}
	return nil
}

// Get loads a task and locks it.
func (r *GormTaskRepository) Get(ctx context.Context, id kernel.UUID) (*production.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TaskDTO
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, pgconv.NotFound(err, "task", id.String())
	}
	return taskToDomain(dto)
}

func (r *GormTaskRepository) ListBySection(ctx context.Context, orderItemID kernel.UUID, s kernel.Section) ([]*production.Task, error) {
	var dtos []TaskDTO
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_item_id = ? AND section = ?", orderItemID.Bytes(), s.String()).
		Order("sequence").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return tasksToDomain(dtos)
}

// ListByOrderItem returns every task of an item by section and sequence,
// without locking.
func ListByOrderItem(ctx context.Context, db *gorm.DB, orderItemID kernel.UUID) ([]*production.Task, error) {
	var dtos []TaskDTO
	err := db.WithContext(ctx).
		Where("order_item_id = ?", orderItemID.Bytes()).
		Order("section, sequence").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return tasksToDomain(dtos)
}

func tasksToDomain(dtos []TaskDTO) ([]*production.Task, error) {
	tasks := make([]*production.Task, 0, len(dtos))
	for _, dto := range dtos {
		t, err := taskToDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// GormCursorRepository stores the rotation cursor in a single row.
type GormCursorRepository struct {
	db *gorm.DB
}

func NewGormCursorRepository(db *gorm.DB) *GormCursorRepository {
	return &GormCursorRepository{db: db}
}

// GetForUpdate creates the row on first use, then locks it so concurrent
// assignments advance the rotation one at a time.
func (r *GormCursorRepository) GetForUpdate(ctx context.Context) (production.Cursor, error) {
	db := r.db.WithContext(ctx)
	seed := CursorDTO{ID: cursorRowID, LastIndex: production.NewCursor().LastIndex()}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return production.Cursor{}, fmt.Errorf("seed head cursor: %w", err)
	}

	var dto CursorDTO
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&dto, "id = ?", cursorRowID).Error; err != nil {
		return production.Cursor{}, err
	}
	return production.RestoreCursor(dto.LastIndex)
}

func (r *GormCursorRepository) Update(ctx context.Context, cursor production.Cursor) error {
	dto := CursorDTO{ID: cursorRowID, LastIndex: cursor.LastIndex()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_index"}),
	}).Create(&dto).Error
}
