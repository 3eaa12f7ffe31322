package memory

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timeline"
)

type timelineRepository struct{ uow *UnitOfWork }

// Append adds the entry and remembers it for publishing after commit.
func (r *timelineRepository) Append(_ context.Context, entry *timeline.Entry) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	d.entries = append(d.entries, *entry)
	r.uow.appended = append(r.uow.appended, entry)
	return nil
}

func (r *timelineRepository) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*timeline.Entry, error) {
	d, err := r.uow.working()
	if err != nil {
		return nil, err
	}
	return entriesOf(d, orderID), nil
}

func entriesOf(d *data, orderID kernel.UUID) []*timeline.Entry {
	out := make([]*timeline.Entry, 0)
	for i := range d.entries {
		if d.entries[i].OrderID().IsEqual(orderID) {
			e := d.entries[i]
			out = append(out, &e)
		}
	}
	return out
}
