package commands

import (
	"errors"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRequestClientApprovalCommandIsNotConstructed = errors.New(
	"RequestClientApprovalCommand must be created via NewRequestClientApprovalCommand constructor",
)

// RequestClientApprovalCommand asks the client to approve sections that have QA evidence.
type RequestClientApprovalCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	sections    []kernel.Section
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewRequestClientApprovalCommand(orderItemID kernel.UUID, sections []kernel.Section, actorID kernel.UUID) (RequestClientApprovalCommand, error) {
	var sectionsErr error
	if len(sections) == 0 {
		sectionsErr = errs.NewValueIsRequiredError("sections")
	}
	if err := errors.Join(orderItemID.Validate(), actorID.Validate(), sectionsErr); err != nil {
		return RequestClientApprovalCommand{}, err
	}
	return RequestClientApprovalCommand{
		orderItemID: orderItemID,
		sections:    kernel.SortSections(slices.Clone(sections)),
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RequestClientApprovalCommand) Validate() error {
	return c.guard.Validate(ErrRequestClientApprovalCommandIsNotConstructed)
}

func (c RequestClientApprovalCommand) OrderItemID() kernel.UUID   { return c.orderItemID }
func (c RequestClientApprovalCommand) Sections() []kernel.Section { return c.sections }
func (c RequestClientApprovalCommand) ActorID() kernel.UUID       { return c.actorID }
