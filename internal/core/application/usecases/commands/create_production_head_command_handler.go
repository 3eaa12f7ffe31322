package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/production"
)

type CreateProductionHeadCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateProductionHeadCommandHandler(uowFactory CatalogUoWFactory) CreateProductionHeadCommandHandler {
	return CreateProductionHeadCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateProductionHeadCommandHandler) Handle(ctx context.Context, cmd CreateProductionHeadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	head, err := production.NewHead(cmd.HeadID(), cmd.Name(), cmd.SortOrder())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductionHeadRepository().Add(ctx, head); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
