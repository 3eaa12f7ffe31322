package commands

import (
	"context"
)

type ReceiveStockCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewReceiveStockCommandHandler(uowFactory CatalogUoWFactory) ReceiveStockCommandHandler {
	return ReceiveStockCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ReceiveStockCommandHandler) Handle(ctx context.Context, cmd ReceiveStockCommand) error {
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

	item, err := uow.InventoryRepository().Get(ctx, cmd.InventoryItemID())
	if err != nil {
		return err
	}
	if err = item.Receive(cmd.Quantity()); err != nil {
		return err
	}
	if err = uow.InventoryRepository().Update(ctx, item); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
