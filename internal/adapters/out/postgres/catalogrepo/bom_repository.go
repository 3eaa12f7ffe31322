package catalogrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fulfillment/internal/adapters/out/postgres/pgconv"
	"fulfillment/internal/core/domain/model/bom"
	"fulfillment/internal/core/domain/model/kernel"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormBOMRepository implements BOMRepository using GORM. Items of a BOM
// version never change after creation; only the active flag is updated.
type GormBOMRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormBOMRepository(db *gorm.DB, tracker aggregateTracker) *GormBOMRepository {
	return &GormBOMRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormBOMRepository) Add(ctx context.Context, aggregate *bom.BOM) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := bomFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBOMRepository) Update(ctx context.Context, aggregate *bom.BOM) error {
	result := r.db.WithContext(ctx).Model(&BOMDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("is_active", aggregate.IsActive())
	if result.Error != nil {
		return fmt.Errorf("update bom: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pgconv.NotFound(gorm.ErrRecordNotFound, "bom", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBOMRepository) Get(ctx context.Context, id kernel.UUID) (*bom.BOM, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BOMDTO
	if err := r.preload(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgconv.NotFound(err, "bom", id.String())
	}
	return bomToDomain(dto)
}

func (r *GormBOMRepository) GetActive(ctx context.Context, productID kernel.UUID, size string) (*bom.BOM, error) {
	normalized, err := bom.NormalizeSize(size)
	if err != nil {
		return nil, err
	}

	var dto BOMDTO
	err = r.preload(ctx).
		Where("product_id = ? AND size = ? AND is_active", productID.Bytes(), normalized).
		First(&dto).Error
	if err != nil {
		return nil, pgconv.NotFound(err, "active bom", productID.String()+"/"+normalized)
	}
	return bomToDomain(dto)
}

// ListByProductSize returns every version of the pair, lowest first. The rows
// stay locked so concurrent activations of the same pair are serialized.
func (r *GormBOMRepository) ListByProductSize(ctx context.Context, productID kernel.UUID, size string) ([]*bom.BOM, error) {
	if normalized, err := bom.NormalizeSize(size); err == nil {
		size = normalized
	}

	var dtos []BOMDTO
	err := r.preload(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND size = ?", productID.Bytes(), size).
		Order("version").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	out := make([]*bom.BOM, 0, len(dtos))
	for _, dto := range dtos {
		b, err := bomToDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *GormBOMRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}
