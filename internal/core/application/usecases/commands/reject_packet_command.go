package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRejectPacketCommandIsNotConstructed = errors.New(
	"RejectPacketCommand must be created via NewRejectPacketCommand constructor",
)

// RejectPacketCommand fails verification of a completed packet. Both the
// reason code and the free-text reason are mandatory.
type RejectPacketCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	reasonCode  string
	reason      string
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewRejectPacketCommand(orderItemID kernel.UUID, reasonCode, reason string, actorID kernel.UUID) (RejectPacketCommand, error) {
	var codeErr, reasonErr error
	if strings.TrimSpace(reasonCode) == "" {
		codeErr = errs.NewValueIsRequiredError("reason code")
	}
	if strings.TrimSpace(reason) == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}
	if err := errors.Join(orderItemID.Validate(), actorID.Validate(), codeErr, reasonErr); err != nil {
		return RejectPacketCommand{}, err
	}
	return RejectPacketCommand{
		orderItemID: orderItemID,
		reasonCode:  strings.TrimSpace(reasonCode),
		reason:      strings.TrimSpace(reason),
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RejectPacketCommand) Validate() error {
	return c.guard.Validate(ErrRejectPacketCommandIsNotConstructed)
}

func (c RejectPacketCommand) OrderItemID() kernel.UUID { return c.orderItemID }
func (c RejectPacketCommand) ReasonCode() string       { return c.reasonCode }
func (c RejectPacketCommand) Reason() string           { return c.reason }
func (c RejectPacketCommand) ActorID() kernel.UUID     { return c.actorID }
