package commands

import (
	"errors"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrApprovePacketSectionsCommandIsNotConstructed = errors.New(
	"ApprovePacketSectionsCommand must be created via NewApprovePacketSectionsCommand constructor",
)

// ApprovePacketSectionsCommand approves named sections ahead of the rest of the packet.
type ApprovePacketSectionsCommand struct { //nolint:recvcheck //using for validation
	orderItemID  kernel.UUID
	sections     []kernel.Section
	isReadyStock bool
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

func NewApprovePacketSectionsCommand(
	orderItemID kernel.UUID,
	sections []kernel.Section,
	isReadyStock bool,
	actorID kernel.UUID,
) (ApprovePacketSectionsCommand, error) {
	var sectionsErr error
	if len(sections) == 0 {
		sectionsErr = errs.NewValueIsRequiredError("sections")
	}
	if err := errors.Join(orderItemID.Validate(), actorID.Validate(), sectionsErr); err != nil {
		return ApprovePacketSectionsCommand{}, err
	}
	return ApprovePacketSectionsCommand{
		orderItemID:  orderItemID,
		sections:     kernel.SortSections(slices.Clone(sections)),
		isReadyStock: isReadyStock,
		actorID:      actorID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c ApprovePacketSectionsCommand) Validate() error {
	return c.guard.Validate(ErrApprovePacketSectionsCommandIsNotConstructed)
}

func (c ApprovePacketSectionsCommand) OrderItemID() kernel.UUID   { return c.orderItemID }
func (c ApprovePacketSectionsCommand) Sections() []kernel.Section { return c.sections }
func (c ApprovePacketSectionsCommand) IsReadyStock() bool         { return c.isReadyStock }
func (c ApprovePacketSectionsCommand) ActorID() kernel.UUID       { return c.actorID }
