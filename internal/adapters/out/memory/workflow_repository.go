package memory

import (
	"cmp"
	"context"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packet"
	"fulfillment/internal/core/domain/model/production"
)

type packetRepository struct{ uow *UnitOfWork }

func (r *packetRepository) Add(_ context.Context, p *packet.Packet) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	if _, ok := d.packets[p.OrderItemID()]; ok {
		return duplicate("packet for order item", p.OrderItemID())
	}
	d.packets[p.OrderItemID()] = p.State()
	return nil
}

func (r *packetRepository) Update(_ context.Context, p *packet.Packet) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	stored, ok := d.packets[p.OrderItemID()]
	if !ok || !stored.ID.IsEqual(p.ID()) {
		return notFound("packet", p.ID())
	}
	d.packets[p.OrderItemID()] = p.State()
	return nil
}

func (r *packetRepository) GetByOrderItem(_ context.Context, orderItemID kernel.UUID) (*packet.Packet, error) {
	d, err := r.uow.working()
	if err != nil {
		return nil, err
	}
	state, ok := d.packets[orderItemID]
	if !ok {
		return nil, notFound("packet for order item", orderItemID)
	}
	return packet.RestorePacket(state)
}

type cursorRepository struct{ uow *UnitOfWork }

func (r *cursorRepository) GetForUpdate(_ context.Context) (production.Cursor, error) {
	d, err := r.uow.working()
	if err != nil {
		return production.Cursor{}, err
	}
	return production.RestoreCursor(d.cursor)
}

func (r *cursorRepository) Update(_ context.Context, cursor production.Cursor) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	d.cursor = cursor.LastIndex()
	return nil
}

type taskRepository struct{ uow *UnitOfWork }

func (r *taskRepository) Add(_ context.Context, t *production.Task) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	if _, ok := d.tasks[t.ID()]; ok {
		return duplicate("task id", t.ID())
	}
	d.tasks[t.ID()] = t.State()
	return nil
}

func (r *taskRepository) Update(_ context.Context, t *production.Task) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	if _, ok := d.tasks[t.ID()]; !ok {
		return notFound("task", t.ID())
	}
	d.tasks[t.ID()] = t.State()
	return nil
}

func (r *taskRepository) Get(_ context.Context, id kernel.UUID) (*production.Task, error) {
	d, err := r.uow.working()
	if err != nil {
		return nil, err
	}
	state, ok := d.tasks[id]
	if !ok {
		return nil, notFound("task", id)
	}
	return production.RestoreTask(state)
}

// ListBySection returns the chain of a section in sequence order.
func (r *taskRepository) ListBySection(_ context.Context, orderItemID kernel.UUID, s kernel.Section) ([]*production.Task, error) {
	d, err := r.uow.working()
	if err != nil {
		return nil, err
	}
	out := make([]*production.Task, 0)
	for _, state := range d.tasks {
		if !state.OrderItemID.IsEqual(orderItemID) || state.Section != s {
			continue
		}
		t, err := production.RestoreTask(state)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *production.Task) int { return cmp.Compare(a.Sequence(), b.Sequence()) })
	return out, nil
}
