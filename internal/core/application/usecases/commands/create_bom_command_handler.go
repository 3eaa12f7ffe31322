package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/bom"
)

// CreateBOMCommandHandler stores a BOM as version max+1 of its (product, size).
type CreateBOMCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateBOMCommandHandler(uowFactory CatalogUoWFactory) CreateBOMCommandHandler {
	return CreateBOMCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateBOMCommandHandler) Handle(ctx context.Context, cmd CreateBOMCommand) error {
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

	// Listing locks the siblings so concurrent creations cannot share a version.
	existing, err := uow.BOMRepository().ListByProductSize(ctx, cmd.ProductID(), cmd.Size())
	if err != nil {
		return err
	}

	b, err := bom.NewBOM(cmd.BOMID(), cmd.ProductID(), cmd.Size(), bom.NextVersion(existing), cmd.Items(), clock())
	if err != nil {
		return err
	}
	if err = uow.BOMRepository().Add(ctx, b); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
