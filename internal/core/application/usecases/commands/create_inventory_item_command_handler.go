package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
)

type CreateInventoryItemCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateInventoryItemCommandHandler(uowFactory CatalogUoWFactory) CreateInventoryItemCommandHandler {
	return CreateInventoryItemCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateInventoryItemCommandHandler) Handle(ctx context.Context, cmd CreateInventoryItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	item, err := inventory.NewItem(cmd.ItemID(), cmd.Name(), cmd.Unit(), cmd.RackLocation(), cmd.OnHand())
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

	if err = uow.InventoryRepository().Add(ctx, item); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
