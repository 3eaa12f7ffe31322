package stockrepo

import (
	"context"

	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres/pgconv"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// GormReservationRepository implements ReservationRepository using GORM.
type GormReservationRepository struct {
	db *gorm.DB
}

func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

func (r *GormReservationRepository) Add(ctx context.Context, res *inventory.Reservation) error {
	dto := reservationFromDomain(res)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update stores the closing of a reservation. Everything else is immutable.
func (r *GormReservationRepository) Update(ctx context.Context, res *inventory.Reservation) error {
	dto := reservationFromDomain(res)
	result := r.db.WithContext(ctx).Model(&ReservationDTO{}).Where("id = ?", dto.ID).
		Updates(map[string]any{"status": dto.Status, "closed_at": dto.ClosedAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pgconv.NotFound(gorm.ErrRecordNotFound, "reservation", res.ID().String())
	}
	return nil
}

func (r *GormReservationRepository) ListOpenByOrderItem(ctx context.Context, orderItemID kernel.UUID) ([]*inventory.Reservation, error) {
	var dtos []ReservationDTO
	err := r.db.WithContext(ctx).
		Where("order_item_id = ? AND status = ?", orderItemID.Bytes(), int(inventory.ReservationReserved)).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	out := make([]*inventory.Reservation, 0, len(dtos))
	for _, dto := range dtos {
		res, err := reservationToDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// GormDemandRepository implements DemandRepository using GORM.
type GormDemandRepository struct {
	db *gorm.DB
}

func NewGormDemandRepository(db *gorm.DB) *GormDemandRepository {
	return &GormDemandRepository{db: db}
}

func (r *GormDemandRepository) DeleteByOrderItem(ctx context.Context, orderItemID kernel.UUID) error {
	return r.db.WithContext(ctx).Where("order_item_id = ?", orderItemID.Bytes()).Delete(&DemandDTO{}).Error
}

func (r *GormDemandRepository) Add(ctx context.Context, demand inventory.Demand) error {
	dto := demandFromDomain(demand)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormDemandRepository) ListByOrderItem(ctx context.Context, orderItemID kernel.UUID) ([]inventory.Demand, error) {
	var dtos []DemandDTO
	err := r.db.WithContext(ctx).Where("order_item_id = ?", orderItemID.Bytes()).
		Order("created_at, item_name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	out := make([]inventory.Demand, 0, len(dtos))
	for _, dto := range dtos {
		d, err := demandToDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
