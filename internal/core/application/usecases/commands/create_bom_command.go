package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/bom"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateBOMCommandIsNotConstructed = errors.New(
	"CreateBOMCommand must be created via NewCreateBOMCommand constructor",
)

// CreateBOMCommand registers a new, inactive bill of materials version for a
// product and size.
type CreateBOMCommand struct { //nolint:recvcheck //using for validation
	bomID     kernel.UUID
	productID kernel.UUID
	size      string
	items     []bom.Item

	guard guard.ConstructorGuard
}

func NewCreateBOMCommand(bomID, productID kernel.UUID, size string, items []bom.Item) (CreateBOMCommand, error) {
	normalized, sizeErr := bom.NormalizeSize(size)
	var itemsErr error
	if len(items) == 0 {
		itemsErr = errs.NewValueIsRequiredError("bom items")
	}
	if err := errors.Join(bomID.Validate(), productID.Validate(), sizeErr, itemsErr); err != nil {
		return CreateBOMCommand{}, err
	}

	return CreateBOMCommand{
		bomID:     bomID,
		productID: productID,
		size:      normalized,
		items:     items,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateBOMCommand) Validate() error {
	return c.guard.Validate(ErrCreateBOMCommandIsNotConstructed)
}

func (c CreateBOMCommand) BOMID() kernel.UUID     { return c.bomID }
func (c CreateBOMCommand) ProductID() kernel.UUID { return c.productID }
func (c CreateBOMCommand) Size() string           { return c.size }
func (c CreateBOMCommand) Items() []bom.Item      { return c.items }
