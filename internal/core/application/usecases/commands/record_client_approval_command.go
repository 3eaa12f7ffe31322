package commands

import (
	"errors"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordClientApprovalCommandIsNotConstructed = errors.New(
	"RecordClientApprovalCommand must be created via NewRecordClientApprovalCommand constructor",
)

// RecordClientApprovalCommand stores the client's approval of sections.
type RecordClientApprovalCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	sections    []kernel.Section
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewRecordClientApprovalCommand(orderItemID kernel.UUID, sections []kernel.Section, actorID kernel.UUID) (RecordClientApprovalCommand, error) {
	var sectionsErr error
	if len(sections) == 0 {
		sectionsErr = errs.NewValueIsRequiredError("sections")
	}
	if err := errors.Join(orderItemID.Validate(), actorID.Validate(), sectionsErr); err != nil {
		return RecordClientApprovalCommand{}, err
	}
	return RecordClientApprovalCommand{
		orderItemID: orderItemID,
		sections:    kernel.SortSections(slices.Clone(sections)),
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RecordClientApprovalCommand) Validate() error {
	return c.guard.Validate(ErrRecordClientApprovalCommandIsNotConstructed)
}

func (c RecordClientApprovalCommand) OrderItemID() kernel.UUID   { return c.orderItemID }
func (c RecordClientApprovalCommand) Sections() []kernel.Section { return c.sections }
func (c RecordClientApprovalCommand) ActorID() kernel.UUID       { return c.actorID }
