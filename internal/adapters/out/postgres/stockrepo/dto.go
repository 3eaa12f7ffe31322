// Package stockrepo persists stock reservations and procurement demands.
package stockrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/adapters/out/postgres/pgconv"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// ReservationDTO is stock earmarked for one section of an order item.
type ReservationDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderItemID     uuid.UUID `gorm:"type:uuid;index:idx_reservations_item_status"`
	InventoryItemID uuid.UUID `gorm:"type:uuid;index"`
	Section         string
	Quantity        float64
	Status          int `gorm:"index:idx_reservations_item_status"`
	CreatedAt       time.Time
	ClosedAt        *time.Time
}

func (ReservationDTO) TableName() string {
	return "reservations"
}

// DemandDTO is an open shortage waiting for procurement.
type DemandDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderItemID     uuid.UUID `gorm:"type:uuid;index"`
	InventoryItemID uuid.UUID `gorm:"type:uuid"`
	ItemName        string
	Unit            string
	Required        float64
	Available       float64
	Shortage        float64
	CreatedAt       time.Time `gorm:"index"`
}

func (DemandDTO) TableName() string {
	return "procurement_demands"
}

func reservationFromDomain(r *inventory.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:              r.ID().Bytes(),
		OrderItemID:     r.OrderItemID().Bytes(),
		InventoryItemID: r.InventoryItemID().Bytes(),
		Section:         r.Section().String(),
		Quantity:        r.Quantity(),
		Status:          int(r.Status()),
		CreatedAt:       r.CreatedAt(),
		ClosedAt:        r.ClosedAt(),
	}
}

func reservationToDomain(dto ReservationDTO) (*inventory.Reservation, error) {
	id, err := pgconv.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	itemID, err := pgconv.ID(dto.OrderItemID)
	if err != nil {
		return nil, err
	}
	invID, err := pgconv.ID(dto.InventoryItemID)
	if err != nil {
		return nil, err
	}
	return inventory.RestoreReservation(id, itemID, invID, kernel.Section(dto.Section), dto.Quantity,
		inventory.ReservationStatus(dto.Status), dto.CreatedAt, dto.ClosedAt), nil
}

func demandFromDomain(d inventory.Demand) DemandDTO {
	return DemandDTO{
		ID:              d.ID.Bytes(),
		OrderItemID:     d.OrderItemID.Bytes(),
		InventoryItemID: d.InventoryItemID.Bytes(),
		ItemName:        d.ItemName,
		Unit:            d.Unit,
		Required:        d.Required,
		Available:       d.Available,
		Shortage:        d.Shortage,
		CreatedAt:       d.CreatedAt,
	}
}

func demandToDomain(dto DemandDTO) (inventory.Demand, error) {
	d := inventory.Demand{
		ItemName:  dto.ItemName,
		Unit:      dto.Unit,
		Required:  dto.Required,
		Available: dto.Available,
		Shortage:  dto.Shortage,
		CreatedAt: dto.CreatedAt,
	}
	var err error
	if d.ID, err = pgconv.ID(dto.ID); err != nil {
		return inventory.Demand{}, err
	}
	if d.OrderItemID, err = pgconv.ID(dto.OrderItemID); err != nil {
		return inventory.Demand{}, err
	}
	if d.InventoryItemID, err = pgconv.ID(dto.InventoryItemID); err != nil {
		return inventory.Demand{}, err
	}
	return d, nil
}
