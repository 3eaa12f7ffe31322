package memory

import (
	"cmp"
	"context"
	"slices"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/packet"
	"fulfillment/internal/core/domain/model/production"
	"fulfillment/internal/pkg/errs"
)

// Reader answers the queries from the committed data.
type Reader struct {
	store *Store
}

func NewReader(store *Store) *Reader {
	return &Reader{store: store}
}

func (r *Reader) OrderItemStatus(ctx context.Context, orderItemID kernel.UUID) (queries.GetOrderItemStatusQueryResponse, error) {
	var view queries.GetOrderItemStatusQueryResponse
	err := r.store.read(ctx, func(d *data) error {
		state, ok := d.items[orderItemID]
		if !ok {
			return errs.NewObjectNotFoundError("order item", orderItemID.String())
		}
		item, err := orderitem.RestoreOrderItem(state)
		if err != nil {
			return err
		}
		view = queries.OrderItemStatusFrom(item)
		return nil
	})
	return view, err
}

func (r *Reader) ProcurementDemands(ctx context.Context) ([]queries.ProcurementDemandResponse, error) {
	var out []queries.ProcurementDemandResponse
	err := r.store.read(ctx, func(d *data) error {
		out = make([]queries.ProcurementDemandResponse, 0, len(d.demands))
		for _, dm := range d.demands {
			row := queries.ProcurementDemandResponse{
				OrderItemID:     dm.OrderItemID,
				InventoryItemID: dm.InventoryItemID,
				ItemName:        dm.ItemName,
				Unit:            dm.Unit,
				Required:        dm.Required,
				Available:       dm.Available,
				Shortage:        dm.Shortage,
				CreatedAt:       dm.CreatedAt,
			}
			if item, ok := d.items[dm.OrderItemID]; ok {
				row.OrderID = item.OrderID
			}
			out = append(out, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b queries.ProcurementDemandResponse) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ItemName, b.ItemName))
	})
	return out, nil
}

func (r *Reader) OrderTimeline(ctx context.Context, orderID kernel.UUID) ([]queries.TimelineEntryResponse, error) {
	var out []queries.TimelineEntryResponse
	err := r.store.read(ctx, func(d *data) error {
		entries := entriesOf(d, orderID)
		out = make([]queries.TimelineEntryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, queries.TimelineEntryResponse{
				ID:          e.ID(),
				OrderItemID: e.OrderItemID(),
				Action:      string(e.Action()),
				Actor:       e.Actor(),
				Details:     e.Details(),
				CreatedAt:   e.CreatedAt(),
			})
		}
		return nil
	})
	return out, err
}

func (r *Reader) OrderItemWork(ctx context.Context, orderItemID kernel.UUID) (queries.GetOrderItemWorkQueryResponse, error) {
	var view queries.GetOrderItemWorkQueryResponse
	err := r.store.read(ctx, func(d *data) error {
		if _, ok := d.items[orderItemID]; !ok {
			return errs.NewObjectNotFoundError("order item", orderItemID.String())
		}

		var p *packet.Packet
		if state, ok := d.packets[orderItemID]; ok {
			restored, err := packet.RestorePacket(state)
			if err != nil {
				return err
			}
			p = restored
		}

		tasks := make([]*production.Task, 0)
		for _, state := range d.tasks {
			if !state.OrderItemID.IsEqual(orderItemID) {
				continue
			}
			t, err := production.RestoreTask(state)
			if err != nil {
				return err
			}
			tasks = append(tasks, t)
		}
		slices.SortFunc(tasks, func(a, b *production.Task) int {
			return cmp.Or(cmp.Compare(a.Section(), b.Section()), cmp.Compare(a.Sequence(), b.Sequence()))
		})

		view = queries.OrderItemWorkFrom(orderItemID, p, tasks)
		return nil
	})
	return view, err
}
