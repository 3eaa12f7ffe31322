package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/bom"
	"fulfillment/internal/core/domain/model/kernel"
)

// BOMRepository defines the persistence contract for bills of materials.
type BOMRepository interface {
	Add(ctx context.Context, aggregate *bom.BOM) error
	Update(ctx context.Context, aggregate *bom.BOM) error
	Get(ctx context.Context, id kernel.UUID) (*bom.BOM, error)

	// GetActive returns the active BOM for (product, size) or an ObjectNotFoundError.
	GetActive(ctx context.Context, productID kernel.UUID, size string) (*bom.BOM, error)

	// ListByProductSize returns every version for (product, size), locked for update.
	ListByProductSize(ctx context.Context, productID kernel.UUID, size string) ([]*bom.BOM, error)
}
