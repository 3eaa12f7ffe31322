package commands

import (
	"errors"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSendToQACommandIsNotConstructed = errors.New(
	"SendToQACommand must be created via NewSendToQACommand constructor",
)

// SendToQACommand hands finished sections to quality assurance.
type SendToQACommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	sections    []kernel.Section
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewSendToQACommand(orderItemID kernel.UUID, sections []kernel.Section, actorID kernel.UUID) (SendToQACommand, error) {
	var sectionsErr error
	if len(sections) == 0 {
		sectionsErr = errs.NewValueIsRequiredError("sections")
	}
	if err := errors.Join(orderItemID.Validate(), actorID.Validate(), sectionsErr); err != nil {
		return SendToQACommand{}, err
	}
	return SendToQACommand{
		orderItemID: orderItemID,
		sections:    kernel.SortSections(slices.Clone(sections)),
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c SendToQACommand) Validate() error {
	return c.guard.Validate(ErrSendToQACommandIsNotConstructed)
}

func (c SendToQACommand) OrderItemID() kernel.UUID   { return c.orderItemID }
func (c SendToQACommand) Sections() []kernel.Section { return c.sections }
func (c SendToQACommand) ActorID() kernel.UUID       { return c.actorID }
