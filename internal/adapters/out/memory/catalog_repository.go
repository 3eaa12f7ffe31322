package memory

import (
	"cmp"
	"context"
	"slices"

	"fulfillment/internal/core/domain/model/bom"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/production"
	"fulfillment/internal/pkg/errs"
)

type bomRepository struct{ uow *UnitOfWork }

func bomToRecord(b *bom.BOM) bomRecord {
	return bomRecord{
		ID:        b.ID(),
		ProductID: b.ProductID(),
		Size:      b.Size(),
		Version:   b.Version(),
		IsActive:  b.IsActive(),
		Items:     b.Items(),
		CreatedAt: b.CreatedAt(),
	}
}

func (rec bomRecord) restore() *bom.BOM {
	return bom.RestoreBOM(rec.ID, rec.ProductID, rec.Size, rec.Version, rec.IsActive, rec.Items, rec.CreatedAt)
}

func (r *bomRepository) Add(_ context.Context, b *bom.BOM) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	if _, ok := d.boms[b.ID()]; ok {
		return duplicate("bom id", b.ID())
	}
	d.boms[b.ID()] = bomToRecord(b)
	return nil
}

func (r *bomRepository) Update(_ context.Context, b *bom.BOM) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	if _, ok := d.boms[b.ID()]; !ok {
		return notFound("bom", b.ID())
	}
	d.boms[b.ID()] = bomToRecord(b)
	return nil
}

func (r *bomRepository) Get(_ context.Context, id kernel.UUID) (*bom.BOM, error) {
	d, err := r.uow.working()
	if err != nil {
		return nil, err
	}
	rec, ok := d.boms[id]
	if !ok {
		return nil, notFound("bom", id)
	}
	return rec.restore(), nil
}

func (r *bomRepository) GetActive(ctx context.Context, productID kernel.UUID, size string) (*bom.BOM, error) {
	all, err := r.ListByProductSize(ctx, productID, size)
	if err != nil {
		return nil, err
	}
	for _, b := range all {
		if b.IsActive() {
			return b, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("active bom", productID.String()+"/"+size)
}

// ListByProductSize returns every version for the pair, lowest first.
func (r *bomRepository) ListByProductSize(_ context.Context, productID kernel.UUID, size string) ([]*bom.BOM, error) {
	d, err := r.uow.working()
	if err != nil {
		return nil, err
	}
	if normalized, err := bom.NormalizeSize(size); err == nil {
		size = normalized
	}

	out := make([]*bom.BOM, 0)
	for _, rec := range d.boms {
		if rec.ProductID.IsEqual(productID) && rec.Size == size {
			out = append(out, rec.restore())
		}
	}
	slices.SortFunc(out, func(a, b *bom.BOM) int { return cmp.Compare(a.Version(), b.Version()) })
	return out, nil
}

type inventoryRepository struct{ uow *UnitOfWork }

func stockToRecord(i *inventory.Item) stockRecord {
	return stockRecord{
		ID:           i.ID(),
		Name:         i.Name(),
		Unit:         i.Unit(),
		RackLocation: i.RackLocation(),
		OnHand:       i.OnHand(),
		Reserved:     i.Reserved(),
	}
}

func (rec stockRecord) restore() *inventory.Item {
	return inventory.RestoreItem(rec.ID, rec.Name, rec.Unit, rec.RackLocation, rec.OnHand, rec.Reserved)
}

func (r *inventoryRepository) Add(_ context.Context, item *inventory.Item) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	if _, ok := d.stock[item.ID()]; ok {
		return duplicate("inventory item id", item.ID())
	}
	d.stock[item.ID()] = stockToRecord(item)
	return nil
}

func (r *inventoryRepository) Update(_ context.Context, item *inventory.Item) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	if _, ok := d.stock[item.ID()]; !ok {
		return notFound("inventory item", item.ID())
	}
	d.stock[item.ID()] = stockToRecord(item)
	return nil
}

func (r *inventoryRepository) Get(_ context.Context, id kernel.UUID) (*inventory.Item, error) {
	d, err := r.uow.working()
	if err != nil {
		return nil, err
	}
	rec, ok := d.stock[id]
	if !ok {
		return nil, notFound("inventory item", id)
	}
	return rec.restore(), nil
}

func (r *inventoryRepository) GetMany(_ context.Context, ids []kernel.UUID) (map[kernel.UUID]*inventory.Item, error) {
	d, err := r.uow.working()
	if err != nil {
		return nil, err
	}
	out := make(map[kernel.UUID]*inventory.Item, len(ids))
	for _, id := range ids {
		if rec, ok := d.stock[id]; ok {
			out[id] = rec.restore()
		}
	}
	return out, nil
}

type headRepository struct{ uow *UnitOfWork }

func (r *headRepository) Add(_ context.Context, h *production.Head) error {
	d, err := r.uow.working()
	if err != nil {
		return err
	}
	if _, ok := d.heads[h.ID()]; ok {
		return duplicate("production head id", h.ID())
	}
	d.heads[h.ID()] = headRecord{ID: h.ID(), Name: h.Name(), Active: h.IsActive(), SortOrder: h.SortOrder()}
	return nil
}

func (r *headRepository) ListAll(_ context.Context) ([]*production.Head, error) {
	d, err := r.uow.working()
	if err != nil {
		return nil, err
	}
	return listHeads(d), nil
}

func listHeads(d *data) []*production.Head {
	out := make([]*production.Head, 0, len(d.heads))
	for _, rec := range d.heads {
		out = append(out, production.RestoreHead(rec.ID, rec.Name, rec.Active, rec.SortOrder))
	}
	slices.SortFunc(out, func(a, b *production.Head) int {
		return cmp.Or(cmp.Compare(a.SortOrder(), b.SortOrder()), a.ID().Compare(b.ID()))
	})
	return out
}
