package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fulfillment/internal/adapters/out/postgres/pgconv"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/section"
	"fulfillment/internal/pkg/errs"
)

// GormOrderItemRepository implements OrderItemRepository using GORM. Writes
// are guarded by the version column.
type GormOrderItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormOrderItemRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderItemRepository {
	return &GormOrderItemRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderItemRepository) Add(ctx context.Context, aggregate *orderitem.OrderItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := itemFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the item only when the stored version still matches, then
// replaces its section records and requirements.
func (r *GormOrderItemRepository) Update(ctx context.Context, aggregate *orderitem.OrderItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := itemFromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	result := r.db.WithContext(ctx).Model(&OrderItemDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").Omit(clause.Associations, "id", "created_at").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.conflict(ctx, aggregate)
	}

	if err := r.replaceChildren(ctx, dto); err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderItemRepository) replaceChildren(ctx context.Context, dto OrderItemDTO) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("order_item_id = ?", dto.ID).Delete(&SectionDTO{}).Error; err != nil {
		return fmt.Errorf("clear sections: %w", err)
	}
	if len(dto.Sections) > 0 {
		if err := db.Create(&dto.Sections).Error; err != nil {
			return fmt.Errorf("store sections: %w", err)
		}
	}

	if err := db.Where("order_item_id = ?", dto.ID).Delete(&RequirementDTO{}).Error; err != nil {
		return fmt.Errorf("clear requirements: %w", err)
	}
	if len(dto.Requirements) > 0 {
		if err := db.Create(&dto.Requirements).Error; err != nil {
			return fmt.Errorf("store requirements: %w", err)
		}
	}
	return nil
}

// conflict tells a missing row apart from a stale version.
func (r *GormOrderItemRepository) conflict(ctx context.Context, aggregate *orderitem.OrderItem) error {
	var stored OrderItemDTO
	err := r.db.WithContext(ctx).Select("version").First(&stored, "id = ?", aggregate.ID().Bytes()).Error
	if err != nil {
		return pgconv.NotFound(err, "order item", aggregate.ID().String())
	}
	return errs.NewVersionIsInvalidError("order item",
		fmt.Errorf("stored version %d, got %d", stored.Version, aggregate.Version()))
}

// Get loads an item and locks its row until the transaction ends.
func (r *GormOrderItemRepository) Get(ctx context.Context, id kernel.UUID) (*orderitem.OrderItem, error) {
	return r.get(ctx, id, clause.Locking{Strength: "UPDATE"})
}

// ReadItem loads an item without locking it.
func ReadItem(ctx context.Context, db *gorm.DB, id kernel.UUID) (*orderitem.OrderItem, error) {
	repo := &GormOrderItemRepository{db: db}
	return repo.get(ctx, id)
}

func (r *GormOrderItemRepository) get(ctx context.Context, id kernel.UUID, clauses ...clause.Expression) (*orderitem.OrderItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderItemDTO
	err := r.preload(ctx).Clauses(clauses...).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, pgconv.NotFound(err, "order item", id.String())
	}

	return itemToDomain(dto)
}

// ListByOrder returns the items of an order, oldest first, locking them.
func (r *GormOrderItemRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*orderitem.OrderItem, error) {
	return r.listByOrder(ctx, orderID, clause.Locking{Strength: "UPDATE"})
}

// ReadByOrder returns the items of an order, oldest first, without locks.
func (r *GormOrderItemRepository) ReadByOrder(ctx context.Context, orderID kernel.UUID) ([]*orderitem.OrderItem, error) {
	return r.listByOrder(ctx, orderID)
}

func (r *GormOrderItemRepository) listByOrder(ctx context.Context, orderID kernel.UUID, clauses ...clause.Expression) ([]*orderitem.OrderItem, error) {
	var dtos []OrderItemDTO
	err := r.preload(ctx).Clauses(clauses...).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return itemsToDomain(dtos)
}

// GetFirstEligibleForHead returns the oldest item without a production head
// that has a section ready for production. Rows locked by a concurrent
// assignment are skipped.
func (r *GormOrderItemRepository) GetFirstEligibleForHead(ctx context.Context) (*orderitem.OrderItem, error) {
	var dto OrderItemDTO
	err := r.preload(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("production_head_id IS NULL").
		Where("EXISTS (SELECT 1 FROM order_item_sections s WHERE s.order_item_id = order_items.id AND s.status IN ?)",
			[]int{int(section.ReadyForProduction), int(section.DyeingCompleted)}).
		Order("created_at, id").
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("order item", "eligible for production head")
	}
	if err != nil {
		return nil, err
	}

	return itemToDomain(dto)
}

func (r *GormOrderItemRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Sections").
		Preload("Requirements", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("CustomBOM", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}

func itemsToDomain(dtos []OrderItemDTO) ([]*orderitem.OrderItem, error) {
	items := make([]*orderitem.OrderItem, 0, len(dtos))
	for _, dto := range dtos {
		item, err := itemToDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
