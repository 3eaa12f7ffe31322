package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrActivateBOMCommandIsNotConstructed = errors.New(
	"ActivateBOMCommand must be created via NewActivateBOMCommand constructor",
)

// ActivateBOMCommand makes one BOM the active version of its (product, size).
type ActivateBOMCommand struct { //nolint:recvcheck //using for validation
	bomID kernel.UUID

	guard guard.ConstructorGuard
}

func NewActivateBOMCommand(bomID kernel.UUID) (ActivateBOMCommand, error) {
	if err := bomID.Validate(); err != nil {
		return ActivateBOMCommand{}, err
	}
	return ActivateBOMCommand{bomID: bomID, guard: guard.NewConstructorGuard()}, nil
}

func (c ActivateBOMCommand) Validate() error {
	return c.guard.Validate(ErrActivateBOMCommandIsNotConstructed)
}

func (c ActivateBOMCommand) BOMID() kernel.UUID { return c.bomID }
