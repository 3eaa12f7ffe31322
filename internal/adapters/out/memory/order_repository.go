package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/pkg/errs"
)

func notFound(param string, id kernel.UUID) error {
	return errs.NewObjectNotFoundError(param, id.String())
}

func duplicate(param string, id kernel.UUID) error {
	return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%s already exists", id))
}

type orderRepository struct{ uow *UnitOfWork }

func (r *orderRepository) Add(_ context.Context, o *order.Order) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	if _, ok := d.orders[o.ID()]; ok {
		return duplicate("order id", o.ID())
	}
	d.orders[o.ID()] = o.State()
	return nil
}

func (r *orderRepository) Update(_ context.Context, o *order.Order) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	if _, ok := d.orders[o.ID()]; !ok {
		return notFound("order", o.ID())
	}
	d.orders[o.ID()] = o.State()
	return nil
}

func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	d, err := r.uow.working()
	if err != nil {
		return nil, err
	}
	state, ok := d.orders[id]
	if !ok {
		return nil, notFound("order", id)
	}
	return order.RestoreOrder(state)
}

func (r *orderRepository) ListOpen(_ context.Context) ([]*order.Order, error) {
	d, err := r.uow.working()
	if err != nil {
		return nil, err
	}
	return openOrders(d)
}

func openOrders(d *data) ([]*order.Order, error) {
	out := make([]*order.Order, 0, len(d.orders))
	for _, state := range d.orders {
		if state.Status == order.Dispatched || state.Status == order.Completed {
			continue
		}
		o, err := order.RestoreOrder(state)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b *order.Order) int {
		return cmp.Or(a.CreatedAt().Compare(b.CreatedAt()), a.ID().Compare(b.ID()))
	})
	return out, nil
}

type orderItemRepository struct{ uow *UnitOfWork }

func (r *orderItemRepository) Add(_ context.Context, item *orderitem.OrderItem) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	if _, ok := d.items[item.ID()]; ok {
		return duplicate("order item id", item.ID())
	}
	d.items[item.ID()] = item.State()
	return nil
}

// Update stores the item when its version matches the stored one and
// advances the version of both.
func (r *orderItemRepository) Update(_ context.Context, item *orderitem.OrderItem) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	stored, ok := d.items[item.ID()]
	if !ok {
		return notFound("order item", item.ID())
	}
	if stored.Version != item.Version() {
		return errs.NewVersionIsInvalidError("order item",
			fmt.Errorf("stored version %d, got %d", stored.Version, item.Version()))
	}
	item.AdvanceVersion()
	d.items[item.ID()] = item.State()
	return nil
}

func (r *orderItemRepository) Get(_ context.Context, id kernel.UUID) (*orderitem.OrderItem, error) {
	d, err := r.uow.working()
	if err != nil {
		return nil, err
	}
	state, ok := d.items[id]
	if !ok {
		return nil, notFound("order item", id)
	}
	return orderitem.RestoreOrderItem(state)
}

func (r *orderItemRepository) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*orderitem.OrderItem, error) {
	d, err := r.uow.working()
	if err != nil {
		return nil, err
	}
	return itemsOf(d, func(s orderitem.State) bool { return s.OrderID.IsEqual(orderID) })
}

// ReadByOrder equals ListByOrder: units of work are already serialized.
func (r *orderItemRepository) ReadByOrder(ctx context.Context, orderID kernel.UUID) ([]*orderitem.OrderItem, error) {
	return r.ListByOrder(ctx, orderID)
}

func (r *orderItemRepository) GetFirstEligibleForHead(_ context.Context) (*orderitem.OrderItem, error) {
	d, err := r.uow.working()
	if err != nil {
		return nil, err
	}
	items, err := itemsOf(d, func(orderitem.State) bool { return true })
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.IsEligibleForHead() {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order item", "eligible for production head")
}

// itemsOf restores the matching items, oldest first.
func itemsOf(d *data, match func(orderitem.State) bool) ([]*orderitem.OrderItem, error) {
	out := make([]*orderitem.OrderItem, 0)
	for _, state := range d.items {
		if !match(state) {
			continue
		}
		item, err := orderitem.RestoreOrderItem(state)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	slices.SortFunc(out, func(a, b *orderitem.OrderItem) int {
		return cmp.Or(a.CreatedAt().Compare(b.CreatedAt()), a.ID().Compare(b.ID()))
	})
	return out, nil
}
