// Package catalogrepo persists the master data of the workshop: bills of
// materials, stock items and production heads.
package catalogrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/adapters/out/postgres/pgconv"
	"fulfillment/internal/core/domain/model/bom"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/production"
)

// BOMDTO is one version of the bill of materials of a (product, size). The
// partial unique index allows a single active version per pair.
type BOMDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;index:idx_boms_active,unique,where:is_active"`
	Size      string    `gorm:"index:idx_boms_active,unique,where:is_active"`
	Version   int
	IsActive  bool
	CreatedAt time.Time

	Items []BOMItemDTO `gorm:"foreignKey:BOMID;constraint:OnDelete:CASCADE"`
}

func (BOMDTO) TableName() string {
	return "boms"
}

// BOMItemDTO is one material line of a BOM.
type BOMItemDTO struct {
	BOMID           uuid.UUID `gorm:"column:bom_id;type:uuid;primaryKey"`
	Position        int       `gorm:"primaryKey"`
	InventoryItemID uuid.UUID `gorm:"type:uuid"`
	QuantityPerUnit float64
	Unit            string
	Piece           string
}

func (BOMItemDTO) TableName() string {
	return "bom_items"
}

// InventoryItemDTO is a stock item with its on-hand and reserved quantities.
type InventoryItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Unit         string
	RackLocation string
	OnHand       float64
	Reserved     float64
}

func (InventoryItemDTO) TableName() string {
	return "inventory_items"
}

// ProductionHeadDTO is a workshop supervisor taking part in the rotation.
type ProductionHeadDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Active    bool
	SortOrder int `gorm:"index"`
}

func (ProductionHeadDTO) TableName() string {
	return "production_heads"
}

func bomFromDomain(b *bom.BOM) BOMDTO {
	dto := BOMDTO{
		ID:        b.ID().Bytes(),
		ProductID: b.ProductID().Bytes(),
		Size:      b.Size(),
		Version:   b.Version(),
		IsActive:  b.IsActive(),
		CreatedAt: b.CreatedAt(),
	}
	items := b.Items()
	dto.Items = make([]BOMItemDTO, 0, len(items))
	for i, item := range items {
		dto.Items = append(dto.Items, BOMItemDTO{
			BOMID:           dto.ID,
			Position:        i,
			InventoryItemID: item.InventoryItemID.Bytes(),
			QuantityPerUnit: item.QuantityPerUnit,
			Unit:            item.Unit,
			Piece:           item.Piece.String(),
		})
	}
	return dto
}

func bomToDomain(dto BOMDTO) (*bom.BOM, error) {
	id, err := pgconv.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	productID, err := pgconv.ID(dto.ProductID)
	if err != nil {
		return nil, err
	}

	items := make([]bom.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		var invID kernel.UUID
		if invID, err = pgconv.ID(item.InventoryItemID); err != nil {
			return nil, err
		}
		items = append(items, bom.Item{
			InventoryItemID: invID,
			QuantityPerUnit: item.QuantityPerUnit,
			Unit:            item.Unit,
			Piece:           kernel.Section(item.Piece),
		})
	}

	return bom.RestoreBOM(id, productID, dto.Size, dto.Version, dto.IsActive, items, dto.CreatedAt), nil
}

func stockFromDomain(item *inventory.Item) InventoryItemDTO {
	return InventoryItemDTO{
		ID:           item.ID().Bytes(),
		Name:         item.Name(),
		Unit:         item.Unit(),
		RackLocation: item.RackLocation(),
		OnHand:       item.OnHand(),
		Reserved:     item.Reserved(),
	}
}

func stockToDomain(dto InventoryItemDTO) (*inventory.Item, error) {
	id, err := pgconv.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	return inventory.RestoreItem(id, dto.Name, dto.Unit, dto.RackLocation, dto.OnHand, dto.Reserved), nil
}

func headFromDomain(h *production.Head) ProductionHeadDTO {
	return ProductionHeadDTO{
		ID:        h.ID().Bytes(),
		Name:      h.Name(),
		Active:    h.IsActive(),
		SortOrder: h.SortOrder(),
	}
}

func headToDomain(dto ProductionHeadDTO) (*production.Head, error) {
	id, err := pgconv.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	return production.RestoreHead(id, dto.Name, dto.Active, dto.SortOrder), nil
}
