package commands

import (
	"errors"
	"fmt"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDyeingCommandIsNotConstructed = errors.New(
	"DyeingCommand must be created via NewDyeingCommand constructor",
)

// DyeingStep is the forward move a dyeing worker makes.
type DyeingStep int

const (
	DyeingAccept DyeingStep = iota + 1
	DyeingStart
	DyeingComplete
)

func (s DyeingStep) String() string {
	switch s {
	case DyeingAccept:
		return "accept"
	case DyeingStart:
		return "start"
	case DyeingComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// ParseDyeingStep reads a step name as used in URLs.
func ParseDyeingStep(raw string) (DyeingStep, error) {
	for _, s := range []DyeingStep{DyeingAccept, DyeingStart, DyeingComplete} {
		if s.String() == raw {
			return s, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("dyeing step", fmt.Errorf("%q is not a step", raw))
}

// DyeingCommand moves sections of an order item one step forward in dyeing.
// The worker accepting the first section holds the item until nothing is
// accepted or in progress any more.
type DyeingCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	step        DyeingStep
	sections    []kernel.Section
	workerID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewDyeingCommand(orderItemID kernel.UUID, step DyeingStep, sections []kernel.Section, workerID kernel.UUID) (DyeingCommand, error) {
	var stepErr, sectionsErr error
	if step < DyeingAccept || step > DyeingComplete {
		stepErr = errs.NewValueIsOutOfRangeError("dyeing step", int(step), int(DyeingAccept), int(DyeingComplete))
	}
	if len(sections) == 0 {
		sectionsErr = errs.NewValueIsRequiredError("sections")
	}
	if err := errors.Join(orderItemID.Validate(), workerID.Validate(), stepErr, sectionsErr); err != nil {
		return DyeingCommand{}, err
	}
	return DyeingCommand{
		orderItemID: orderItemID,
		step:        step,
		sections:    kernel.SortSections(slices.Clone(sections)),
		workerID:    workerID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c DyeingCommand) Validate() error {
	return c.guard.Validate(ErrDyeingCommandIsNotConstructed)
}

func (c DyeingCommand) OrderItemID() kernel.UUID   { return c.orderItemID }
func (c DyeingCommand) Step() DyeingStep           { return c.step }
func (c DyeingCommand) Sections() []kernel.Section { return c.sections }
func (c DyeingCommand) WorkerID() kernel.UUID      { return c.workerID }
