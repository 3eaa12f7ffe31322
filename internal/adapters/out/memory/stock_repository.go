package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

type reservationRepository struct{ uow *UnitOfWork }

func reservationToRecord(r *inventory.Reservation) reservationRecord {
	rec := reservationRecord{
		ID:              r.ID(),
		OrderItemID:     r.OrderItemID(),
		InventoryItemID: r.InventoryItemID(),
		Section:         r.Section(),
		Quantity:        r.Quantity(),
		Status:          r.Status(),
		CreatedAt:       r.CreatedAt(),
	}
	if closed := r.ClosedAt(); closed != nil {
		at := *closed
		rec.ClosedAt = &at
	}
	return rec
}

func (rec reservationRecord) restore() *inventory.Reservation {
	var closed *time.Time
	if rec.ClosedAt != nil {
		at := *rec.ClosedAt
		closed = &at
	}
	return inventory.RestoreReservation(rec.ID, rec.OrderItemID, rec.InventoryItemID,
		rec.Section, rec.Quantity, rec.Status, rec.CreatedAt, closed)
}

func (r *reservationRepository) Add(_ context.Context, res *inventory.Reservation) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	if _, ok := d.reservations[res.ID()]; ok {
		return duplicate("reservation id", res.ID())
	}
	d.reservations[res.ID()] = reservationToRecord(res)
	return nil
}

func (r *reservationRepository) Update(_ context.Context, res *inventory.Reservation) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	if _, ok := d.reservations[res.ID()]; !ok {
		return notFound("reservation", res.ID())
	}
	d.reservations[res.ID()] = reservationToRecord(res)
	return nil
}

func (r *reservationRepository) ListOpenByOrderItem(_ context.Context, orderItemID kernel.UUID) ([]*inventory.Reservation, error) {
	d, err := r.uow.working()
	if err != nil {
		return nil, err
	}
	out := make([]*inventory.Reservation, 0)
	for _, rec := range d.reservations {
		if rec.OrderItemID.IsEqual(orderItemID) && rec.Status == inventory.ReservationReserved {
			out = append(out, rec.restore())
		}
	}
	slices.SortFunc(out, func(a, b *inventory.Reservation) int {
		return cmp.Or(a.CreatedAt().Compare(b.CreatedAt()), a.ID().Compare(b.ID()))
	})
	return out, nil
}

type demandRepository struct{ uow *UnitOfWork }

func (r *demandRepository) DeleteByOrderItem(_ context.Context, orderItemID kernel.UUID) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	d.demands = slices.DeleteFunc(d.demands, func(dm inventory.Demand) bool {
		return dm.OrderItemID.IsEqual(orderItemID)
	})
	return nil
}

func (r *demandRepository) Add(_ context.Context, demand inventory.Demand) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	d.demands = append(d.demands, demand)
	return nil
}

func (r *demandRepository) ListByOrderItem(_ context.Context, orderItemID kernel.UUID) ([]inventory.Demand, error) {
	d, err := r.uow.working()
	if err != nil {
		return nil, err
	}
	out := make([]inventory.Demand, 0)
	for _, dm := range d.demands {
		if dm.OrderItemID.IsEqual(orderItemID) {
			out = append(out, dm)
		}
	}
	return out, nil
}
