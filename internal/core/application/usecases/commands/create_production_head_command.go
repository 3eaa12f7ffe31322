package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateProductionHeadCommandIsNotConstructed = errors.New(
	"CreateProductionHeadCommand must be created via NewCreateProductionHeadCommand constructor",
)

// CreateProductionHeadCommand adds a head to the assignment rotation. Heads
// rotate in sortOrder.
type CreateProductionHeadCommand struct { //nolint:recvcheck //using for validation
	headID    kernel.UUID
	name      string
	sortOrder int

	guard guard.ConstructorGuard
}

func NewCreateProductionHeadCommand(headID kernel.UUID, name string, sortOrder int) (CreateProductionHeadCommand, error) {
	if err := headID.Validate(); err != nil {
		return CreateProductionHeadCommand{}, err
	}
	return CreateProductionHeadCommand{
		headID:    headID,
		name:      name,
		sortOrder: sortOrder,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateProductionHeadCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductionHeadCommandIsNotConstructed)
}

func (c CreateProductionHeadCommand) HeadID() kernel.UUID { return c.headID }
func (c CreateProductionHeadCommand) Name() string        { return c.name }
func (c CreateProductionHeadCommand) SortOrder() int      { return c.sortOrder }
