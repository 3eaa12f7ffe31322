package catalogrepo

import (
	"context"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/production"
)

// GormHeadRepository implements ProductionHeadRepository using GORM.
type GormHeadRepository struct {
	db *gorm.DB
}

func NewGormHeadRepository(db *gorm.DB) *GormHeadRepository {
	return &GormHeadRepository{db: db}
}

func (r *GormHeadRepository) Add(ctx context.Context, head *production.Head) error {
	if err := head.Validate(); err != nil {
		return err
	}
	dto := headFromDomain(head)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListAll returns the heads in rotation order.
func (r *GormHeadRepository) ListAll(ctx context.Context) ([]*production.Head, error) {
	var dtos []ProductionHeadDTO
	if err := r.db.WithContext(ctx).Order("sort_order, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	heads := make([]*production.Head, 0, len(dtos))
	for _, dto := range dtos {
		h, err := headToDomain(dto)
		if err != nil {
			return nil, err
		}
		heads = append(heads, h)
	}
	return heads, nil
}
