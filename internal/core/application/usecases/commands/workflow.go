package commands

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/packet"
	"fulfillment/internal/core/domain/model/timeline"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// clock stamps every change made by a handler.
var clock = func() time.Time { return time.Now().UTC() }

type orderScope interface {
	OrderRepoFactory
	TimelineRepoFactory
}

type stockScope interface {
	CatalogRepoFactory
	StockRepoFactory
}

// note is the timeline entry written once a transition succeeded.
type note struct {
	actor   string
	details string
}

func appendEntry(
	ctx context.Context,
	repo ports.TimelineRepository,
	orderID kernel.UUID,
	itemID *kernel.UUID,
	action timeline.Action,
	n note,
	at time.Time,
) error {
	entry, err := timeline.NewEntry(orderID, itemID, action, n.actor, n.details, at)
	if err != nil {
		return err
	}
	return repo.Append(ctx, &entry)
}

// saveItem persists the item, re-derives its order status and records the change.
func saveItem(
	ctx context.Context,
	uow orderScope,
	item *orderitem.OrderItem,
	action timeline.Action,
	n note,
	at time.Time,
) error {
	if err := uow.OrderItemRepository().Update(ctx, item); err != nil {
		return err
	}
	if err := syncOrder(ctx, uow, item, at); err != nil {
		return err
	}
	id := item.ID()
	return appendEntry(ctx, uow.TimelineRepository(), item.OrderID(), &id, action, n, at)
}

// syncOrder recomputes the order status from its items, reading changed
// from memory so the result does not depend on what the store already sees.
// The order row lock serializes recomputes; siblings are read without locks
// so two item handlers of one order never wait on each other's item.
func syncOrder(ctx context.Context, uow OrderRepoFactory, changed *orderitem.OrderItem, at time.Time) error {
	o, err := uow.OrderRepository().Get(ctx, changed.OrderID())
	if err != nil {
		return err
	}
	items, err := uow.OrderItemRepository().ReadByOrder(ctx, changed.OrderID())
	if err != nil {
		return err
	}

	statuses := make([]orderitem.Status, 0, len(items))
	seen := false
	for _, it := range items {
		if it.ID().IsEqual(changed.ID()) {
			statuses = append(statuses, changed.Status())
			seen = true
			continue
		}
		statuses = append(statuses, it.Status())
	}
	if !seen {
		statuses = append(statuses, changed.Status())
	}

	if !o.SyncItems(statuses, at) {
		return nil
	}
	return uow.OrderRepository().Update(ctx, o)
}

// findPacket returns the packet of an item, or nil when none exists yet.
func findPacket(ctx context.Context, repo ports.PacketRepository, orderItemID kernel.UUID) (*packet.Packet, error) {
	p, err := repo.GetByOrderItem(ctx, orderItemID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

type settleFunc func(r *inventory.Reservation, stock *inventory.Item, at time.Time) error

// settleReservations releases or consumes the open reservations of the given
// sections. A nil sections slice selects every open reservation of the item.
func settleReservations(
	ctx context.Context,
	uow stockScope,
	orderItemID kernel.UUID,
	sections []kernel.Section,
	settle settleFunc,
	at time.Time,
) error {
	open, err := uow.ReservationRepository().ListOpenByOrderItem(ctx, orderItemID)
	if err != nil {
		return err
	}

	targets := make([]*inventory.Reservation, 0, len(open))
	ids := make([]kernel.UUID, 0, len(open))
	for _, r := range open {
		if sections != nil && !kernel.ContainsSection(sections, r.Section()) {
			continue
		}
		targets = append(targets, r)
		if !slices.ContainsFunc(ids, r.InventoryItemID().IsEqual) {
			ids = append(ids, r.InventoryItemID())
		}
	}
	if len(targets) == 0 {
		return nil
	}

	stock, err := uow.InventoryRepository().GetMany(ctx, kernel.SortUUIDs(ids))
	if err != nil {
		return err
	}
	for _, r := range targets {
		item, ok := stock[r.InventoryItemID()]
		if !ok {
			return errs.NewObjectNotFoundError("inventory item", r.InventoryItemID().String())
		}
		if err = settle(r, item, at); err != nil {
			return err
		}
		if err = uow.ReservationRepository().Update(ctx, r); err != nil {
			return err
		}
	}
	return updateStock(ctx, uow.InventoryRepository(), stock)
}

func releaseReservations(ctx context.Context, uow stockScope, orderItemID kernel.UUID, sections []kernel.Section, at time.Time) error {
	return settleReservations(ctx, uow, orderItemID, sections, (*inventory.Reservation).Release, at)
}

func consumeReservations(ctx context.Context, uow stockScope, orderItemID kernel.UUID, sections []kernel.Section, at time.Time) error {
	return settleReservations(ctx, uow, orderItemID, sections, (*inventory.Reservation).Consume, at)
}

// reserveShares books every share on the already locked stock.
func reserveShares(
	ctx context.Context,
	uow stockScope,
	orderItemID kernel.UUID,
	shares []services.Share,
	stock map[kernel.UUID]*inventory.Item,
	at time.Time,
) error {
	touched := make(map[kernel.UUID]*inventory.Item)
	for _, share := range shares {
		item, ok := stock[share.InventoryItemID]
		if !ok {
			return errs.NewObjectNotFoundError("inventory item", share.InventoryItemID.String())
		}
		r, err := inventory.Reserve(item, orderItemID, share.Section, share.Quantity, at)
		if err != nil {
			return err
		}
		if err = uow.ReservationRepository().Add(ctx, r); err != nil {
			return err
		}
		touched[item.ID()] = item
	}
	return updateStock(ctx, uow.InventoryRepository(), touched)
}

// topUpReservations re-reserves whatever part of the sections' material shares
// is no longer covered by an open reservation, for example after a dyeing
// rejection released it.
func topUpReservations(
	ctx context.Context,
	uow stockScope,
	item *orderitem.OrderItem,
	sections []kernel.Section,
	at time.Time,
) error {
	open, err := uow.ReservationRepository().ListOpenByOrderItem(ctx, item.ID())
	if err != nil {
		return err
	}
	type key struct {
		item    kernel.UUID
		section kernel.Section
	}
	covered := make(map[key]float64)
	for _, r := range open {
		covered[key{r.InventoryItemID(), r.Section()}] += r.Quantity()
	}

	missing := make([]services.Share, 0)
	names := make(map[kernel.UUID]string)
	for _, req := range item.MaterialRequirements() {
		for _, s := range sections {
			qty := kernel.RoundQuantity(req.Shares[s] - covered[key{req.InventoryItemID, s}])
			if qty <= 0 {
				continue
			}
			missing = append(missing, services.Share{InventoryItemID: req.InventoryItemID, Section: s, Quantity: qty})
			names[req.InventoryItemID] = req.ItemName
		}
	}
	if len(missing) == 0 {
		return nil
	}

	stock, err := uow.InventoryRepository().GetMany(ctx, kernel.SortUUIDs(slices.Collect(maps.Keys(names))))
	if err != nil {
		return err
	}

	need := make(map[kernel.UUID]float64)
	for _, share := range missing {
		need[share.InventoryItemID] += share.Quantity
	}
	short := make([]string, 0)
	for _, id := range kernel.SortUUIDs(slices.Collect(maps.Keys(need))) {
		s, ok := stock[id]
		if !ok {
			return errs.NewObjectNotFoundError("inventory item", id.String())
		}
		if need[id] > s.Available() {
			short = append(short, fmt.Sprintf("%s: required %v, available %v", names[id], need[id], s.Available()))
		}
	}
	if len(short) > 0 {
		return errs.NewIncompletePreconditionError("insufficient stock to re-reserve material", short...)
	}

	return reserveShares(ctx, uow, item.ID(), missing, stock, at)
}

func updateStock(ctx context.Context, repo ports.InventoryRepository, stock map[kernel.UUID]*inventory.Item) error {
	for _, id := range kernel.SortUUIDs(slices.Collect(maps.Keys(stock))) {
		if err := repo.Update(ctx, stock[id]); err != nil {
			return err
		}
	}
	return nil
}
