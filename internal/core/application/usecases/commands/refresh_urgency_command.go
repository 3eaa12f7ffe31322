package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRefreshUrgencyCommandIsNotConstructed = errors.New(
	"RefreshUrgencyCommand must be created via NewRefreshUrgencyCommand constructor",
)

// RefreshUrgencyCommand re-flags open orders whose FWD date falls inside window.
type RefreshUrgencyCommand struct { //nolint:recvcheck //using for validation
	window time.Duration

	guard guard.ConstructorGuard
}

func NewRefreshUrgencyCommand(window time.Duration) (RefreshUrgencyCommand, error) {
	if window <= 0 {
		return RefreshUrgencyCommand{}, errs.NewValueIsOutOfRangeError("urgency window", window, "1ns", "unbounded")
	}
	return RefreshUrgencyCommand{window: window, guard: guard.NewConstructorGuard()}, nil
}

func (c RefreshUrgencyCommand) Validate() error {
	return c.guard.Validate(ErrRefreshUrgencyCommandIsNotConstructed)
}

func (c RefreshUrgencyCommand) Window() time.Duration { return c.window }
