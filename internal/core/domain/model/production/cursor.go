package production

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Cursor is the persisted position of the head rotation. LastIndex is the
// index, within the active heads, of the last head handed out; -1 before the
// first assignment.
type Cursor struct {
	lastIndex int
}

func NewCursor() Cursor {
	return Cursor{lastIndex: -1}
}

func RestoreCursor(lastIndex int) (Cursor, error) {
	if lastIndex < -1 {
		return Cursor{}, errs.NewValueIsInvalidErrorWithCause("cursor", fmt.Errorf("%d is below -1", lastIndex))
	}
	return Cursor{lastIndex: lastIndex}, nil
}

func (c Cursor) LastIndex() int { return c.lastIndex }

// Next hands out heads[(last+1) mod N] over the active heads and advances the
// cursor by exactly one.
func (c *Cursor) Next(heads []*Head) (*Head, error) {
	active := ActiveHeads(heads)
	if len(active) == 0 {
		return nil, errs.NewStateConflictError("production heads", "none active", "at least one active")
	}

	idx := (c.lastIndex + 1) % len(active)
	c.lastIndex = idx
	return active[idx], nil
}
