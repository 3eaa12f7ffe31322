package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrAssignNextProductionHeadCommandIsNotConstructed = errors.New(
	"AssignNextProductionHeadCommand must be created via NewAssignNextProductionHeadCommand constructor",
)

// AssignNextProductionHeadCommand assigns a head to the oldest item waiting for one.
type AssignNextProductionHeadCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

func NewAssignNextProductionHeadCommand() (AssignNextProductionHeadCommand, error) {
	return AssignNextProductionHeadCommand{guard: guard.NewConstructorGuard()}, nil
}

func (c AssignNextProductionHeadCommand) Validate() error {
	return c.guard.Validate(ErrAssignNextProductionHeadCommandIsNotConstructed)
}
