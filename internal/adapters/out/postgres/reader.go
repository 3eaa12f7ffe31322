package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/packetrepo"
	"fulfillment/internal/adapters/out/postgres/pgconv"
	"fulfillment/internal/adapters/out/postgres/productionrepo"
	"fulfillment/internal/adapters/out/postgres/stockrepo"
	"fulfillment/internal/adapters/out/postgres/timelinerepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Reader answers the queries from committed rows without taking locks.
type Reader struct {
	db *gorm.DB
}

func NewReader(db *gorm.DB) *Reader {
	return &Reader{db: db}
}

func (r *Reader) OrderItemStatus(ctx context.Context, orderItemID kernel.UUID) (queries.GetOrderItemStatusQueryResponse, error) {
	item, err := orderrepo.ReadItem(ctx, r.db, orderItemID)
	if err != nil {
		return queries.GetOrderItemStatusQueryResponse{}, err
	}
	return queries.OrderItemStatusFrom(item), nil
}

func (r *Reader) OrderItemWork(ctx context.Context, orderItemID kernel.UUID) (queries.GetOrderItemWorkQueryResponse, error) {
	if _, err := orderrepo.ReadItem(ctx, r.db, orderItemID); err != nil {
		return queries.GetOrderItemWorkQueryResponse{}, err
	}

	p, err := packetrepo.ReadByOrderItem(ctx, r.db, orderItemID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return queries.GetOrderItemWorkQueryResponse{}, err
	}

	tasks, err := productionrepo.ListByOrderItem(ctx, r.db, orderItemID)
	if err != nil {
		return queries.GetOrderItemWorkQueryResponse{}, err
	}
	return queries.OrderItemWorkFrom(orderItemID, p, tasks), nil
}

type demandRow struct {
	stockrepo.DemandDTO `gorm:"embedded"`
	OrderID             *uuid.UUID
}

func (r *Reader) ProcurementDemands(ctx context.Context) ([]queries.ProcurementDemandResponse, error) {
	var rows []demandRow
	err := r.db.WithContext(ctx).
		Table("procurement_demands AS d").
		Select("d.*, i.order_id").
		Joins("LEFT JOIN order_items AS i ON i.id = d.order_item_id").
		Order("d.created_at, d.item_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]queries.ProcurementDemandResponse, 0, len(rows))
	for _, row := range rows {
		resp := queries.ProcurementDemandResponse{
			ItemName:  row.ItemName,
			Unit:      row.Unit,
			Required:  row.Required,
			Available: row.Available,
			Shortage:  row.Shortage,
			CreatedAt: row.CreatedAt,
		}
		if resp.OrderItemID, err = pgconv.ID(row.OrderItemID); err != nil {
			return nil, err
		}
		if resp.InventoryItemID, err = pgconv.ID(row.InventoryItemID); err != nil {
			return nil, err
		}
		if row.OrderID != nil {
			if resp.OrderID, err = pgconv.ID(*row.OrderID); err != nil {
				return nil, err
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

func (r *Reader) OrderTimeline(ctx context.Context, orderID kernel.UUID) ([]queries.TimelineEntryResponse, error) {
	dtos, err := timelinerepo.ListByOrder(r.db.WithContext(ctx), orderID)
	if err != nil {
		return nil, err
	}

	out := make([]queries.TimelineEntryResponse, 0, len(dtos))
	for _, dto := range dtos {
		e, err := timelinerepo.ToDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, queries.TimelineEntryResponse{
			ID:          e.ID(),
			OrderItemID: e.OrderItemID(),
			Action:      string(e.Action()),
			Actor:       e.Actor(),
			Details:     e.Details(),
			CreatedAt:   e.CreatedAt(),
		})
	}
	return out, nil
}
