// Package timelinerepo persists the audit trail of orders.
package timelinerepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres/pgconv"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timeline"
)

// EntryDTO is one audit record. Seq is assigned by the database and keeps
// entries written in the same instant in insertion order.
type EntryDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq         int64      `gorm:"type:bigserial;not null;uniqueIndex;<-:false"`
	OrderID     uuid.UUID  `gorm:"type:uuid;index"`
	OrderItemID *uuid.UUID `gorm:"type:uuid"`
	Action      string     `gorm:"index"`
	Actor       string
	Details     string
	CreatedAt   time.Time
}

func (EntryDTO) TableName() string {
	return "timeline_entries"
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormTimelineRepository implements TimelineRepository using GORM. Appended
// entries are tracked so the unit of work can publish them after commit.
type GormTimelineRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormTimelineRepository(db *gorm.DB, tracker aggregateTracker) *GormTimelineRepository {
	return &GormTimelineRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormTimelineRepository) Append(ctx context.Context, entry *timeline.Entry) error {
	dto := EntryDTO{
		ID:          entry.ID().Bytes(),
		OrderID:     entry.OrderID().Bytes(),
		OrderItemID: pgconv.OptionalID(entry.OrderItemID()),
		Action:      string(entry.Action()),
		Actor:       entry.Actor(),
		Details:     entry.Details(),
		CreatedAt:   entry.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

func (r *GormTimelineRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*timeline.Entry, error) {
	dtos, err := ListByOrder(r.db.WithContext(ctx), orderID)
	if err != nil {
		return nil, err
	}

	out := make([]*timeline.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, nil
}

// ListByOrder reads the entries of an order in insertion order.
func ListByOrder(db *gorm.DB, orderID kernel.UUID) ([]EntryDTO, error) {
	var dtos []EntryDTO
	err := db.Where("order_id = ?", orderID.Bytes()).Order("seq").Find(&dtos).Error
	return dtos, err
}

func ToDomain(dto EntryDTO) (timeline.Entry, error) {
	id, err := pgconv.ID(dto.ID)
	if err != nil {
		return timeline.Entry{}, err
	}
	orderID, err := pgconv.ID(dto.OrderID)
	if err != nil {
		return timeline.Entry{}, err
	}
	itemID, err := pgconv.FromOptionalID(dto.OrderItemID)
	if err != nil {
		return timeline.Entry{}, err
	}
	return timeline.RestoreEntry(id, orderID, itemID, timeline.Action(dto.Action),
		dto.Actor, dto.Details, dto.CreatedAt), nil
}
