package commands

import (
	"errors"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRejectDyeingCommandIsNotConstructed = errors.New(
	"RejectDyeingCommand must be created via NewRejectDyeingCommand constructor",
)

// RejectDyeingCommand refuses sections at dyeing. Notes are mandatory, the
// reason code is optional.
type RejectDyeingCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	sections    []kernel.Section
	reasonCode  string
	notes       string
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewRejectDyeingCommand(
	orderItemID kernel.UUID,
	sections []kernel.Section,
	reasonCode, notes string,
	actorID kernel.UUID,
) (RejectDyeingCommand, error) {
	var sectionsErr, notesErr error
	if len(sections) == 0 {
		sectionsErr = errs.NewValueIsRequiredError("sections")
	}
	if strings.TrimSpace(notes) == "" {
		notesErr = errs.NewValueIsRequiredError("notes")
	}
	if err := errors.Join(orderItemID.Validate(), actorID.Validate(), sectionsErr, notesErr); err != nil {
		return RejectDyeingCommand{}, err
	}
	return RejectDyeingCommand{
		orderItemID: orderItemID,
		sections:    kernel.SortSections(slices.Clone(sections)),
		reasonCode:  strings.TrimSpace(reasonCode),
		notes:       strings.TrimSpace(notes),
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RejectDyeingCommand) Validate() error {
	return c.guard.Validate(ErrRejectDyeingCommandIsNotConstructed)
}

func (c RejectDyeingCommand) OrderItemID() kernel.UUID   { return c.orderItemID }
func (c RejectDyeingCommand) Sections() []kernel.Section { return c.sections }
func (c RejectDyeingCommand) ReasonCode() string         { return c.reasonCode }
func (c RejectDyeingCommand) Notes() string              { return c.notes }
func (c RejectDyeingCommand) ActorID() kernel.UUID       { return c.actorID }
