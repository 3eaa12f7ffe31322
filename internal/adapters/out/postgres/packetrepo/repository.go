package packetrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fulfillment/internal/adapters/out/postgres/pgconv"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packet"
)

// GormPacketRepository implements PacketRepository using GORM.
type GormPacketRepository struct {
	db *gorm.DB
}

func NewGormPacketRepository(db *gorm.DB) *GormPacketRepository {
	return &GormPacketRepository{db: db}
}

func (r *GormPacketRepository) Add(ctx context.Context, aggregate *packet.Packet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := packetFromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves the packet row and upserts its lines. Lines are never removed
// from a packet, a rejection only resets their picked quantity.
func (r *GormPacketRepository) Update(ctx context.Context, aggregate *packet.Packet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := packetFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PacketDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit(clause.Associations, "id", "order_item_id", "created_at").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pgconv.NotFound(gorm.ErrRecordNotFound, "packet", aggregate.ID().String())
	}

	if len(dto.Lines) > 0 {
		err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"picked", "is_picked", "position"}),
		}).Create(&dto.Lines).Error
		if err != nil {
			return fmt.Errorf("store packet lines: %w", err)
		}
	}
	return nil
}

// GetByOrderItem loads the packet of an item and locks it.
func (r *GormPacketRepository) GetByOrderItem(ctx context.Context, orderItemID kernel.UUID) (*packet.Packet, error) {
	return r.get(ctx, orderItemID, clause.Locking{Strength: "UPDATE"})
}

// ReadByOrderItem loads the packet of an item without locking it.
func ReadByOrderItem(ctx context.Context, db *gorm.DB, orderItemID kernel.UUID) (*packet.Packet, error) {
	return NewGormPacketRepository(db).get(ctx, orderItemID)
}

func (r *GormPacketRepository) get(ctx context.Context, orderItemID kernel.UUID, clauses ...clause.Expression) (*packet.Packet, error) {
	var dto PacketDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Clauses(clauses...).
		First(&dto, "order_item_id = ?", orderItemID.Bytes()).Error
	if err != nil {
		return nil, pgconv.NotFound(err, "packet", orderItemID.String())
	}
	return packetToDomain(dto)
}
