package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/bom"
)

// ActivateBOMCommandHandler activates a BOM and deactivates its siblings of the
// same product and size. BOMs of other sizes are left alone.
type ActivateBOMCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewActivateBOMCommandHandler(uowFactory CatalogUoWFactory) ActivateBOMCommandHandler {
	return ActivateBOMCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ActivateBOMCommandHandler) Handle(ctx context.Context, cmd ActivateBOMCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.BOMRepository()
	target, err := repo.Get(ctx, cmd.BOMID())
	if err != nil {
		return err
	}
	siblings, err := repo.ListByProductSize(ctx, target.ProductID(), target.Size())
	if err != nil {
		return err
	}

	changed, err := bom.Activate(target, siblings)
	if err != nil {
		return err
	}
	for _, b := range changed {
		if err = repo.Update(ctx, b); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
