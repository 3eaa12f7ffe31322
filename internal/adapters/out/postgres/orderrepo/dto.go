// Package orderrepo provides data transfer objects and mapping functions for
// the persistence of orders and order items. It converts between domain
// aggregates and their relational representation.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/adapters/out/postgres/pgconv"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderDTO represents the database structure of an order. Payments live in
// their own table and are loaded with the order.
type OrderDTO struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Customer         CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`
	TotalAmount      int64
	Status           int `gorm:"index"`
	FwdDate          *time.Time
	Urgent           bool
	DispatchCourier  string
	DispatchTracking string
	DispatchedAt     *time.Time
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time

	Payments []PaymentDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for orders.
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO is embedded into the orders table.
type CustomerDTO struct {
	Name    string
	Phone   string
	Address string
}

// PaymentDTO is one payment received against an order.
type PaymentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Amount     int64
	Method     string
	Reference  string
	ReceivedAt time.Time
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func orderFromDomain(o *order.Order) OrderDTO {
	state := o.State()
	dto := OrderDTO{
		ID: state.ID.Bytes(),
		Customer: CustomerDTO{
			Name:    state.Customer.Name,
			Phone:   state.Customer.Phone,
			Address: state.Customer.Address,
		},
		TotalAmount: state.TotalAmount,
		Status:      int(state.Status),
		FwdDate:     state.FwdDate,
		Urgent:      state.Urgent,
		CreatedAt:   state.CreatedAt,
		UpdatedAt:   state.UpdatedAt,
		Payments:    make([]PaymentDTO, 0, len(state.Payments)),
	}
	if state.Dispatch != nil {
		at := state.Dispatch.DispatchedAt
		dto.DispatchCourier = state.Dispatch.Courier
		dto.DispatchTracking = state.Dispatch.TrackingNumber
		dto.DispatchedAt = &at
	}
	for _, p := range state.Payments {
		dto.Payments = append(dto.Payments, PaymentDTO{
			ID:         p.ID.Bytes(),
			OrderID:    dto.ID,
			Amount:     p.Amount,
			Method:     p.Method,
			Reference:  p.Reference,
			ReceivedAt: p.ReceivedAt,
		})
	}
	return dto
}

func orderToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := pgconv.ID(dto.ID)
	if err != nil {
		return nil, err
	}

	state := order.State{
		ID: id,
		Customer: order.Customer{
			Name:    dto.Customer.Name,
			Phone:   dto.Customer.Phone,
			Address: dto.Customer.Address,
		},
		TotalAmount: dto.TotalAmount,
		Status:      order.Status(dto.Status),
		FwdDate:     dto.FwdDate,
		Urgent:      dto.Urgent,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
		Payments:    make([]order.Payment, 0, len(dto.Payments)),
	}
	if dto.DispatchedAt != nil {
		state.Dispatch = &order.DispatchInfo{
			Courier:        dto.DispatchCourier,
			TrackingNumber: dto.DispatchTracking,
			DispatchedAt:   *dto.DispatchedAt,
		}
	}
	for _, p := range dto.Payments {
		var paymentID kernel.UUID
		if paymentID, err = pgconv.ID(p.ID); err != nil {
			return nil, err
		}
		state.Payments = append(state.Payments, order.Payment{
			ID:         paymentID,
			Amount:     p.Amount,
			Method:     p.Method,
			Reference:  p.Reference,
			ReceivedAt: p.ReceivedAt,
		})
	}

	return order.RestoreOrder(state)
}
