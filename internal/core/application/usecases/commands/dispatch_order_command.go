package commands

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand hands a ready order to a courier.
//
// Example:
//
//	cmd, err := NewDispatchOrderCommand(orderID, "TCS", "TRK-1001", time.Now(), userID)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("dispatch failed: %w", err)
//	}
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	courier        string
	trackingNumber string
	dispatchedAt   time.Time
	actorID        kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchOrderCommand requires courier, tracking number and dispatch date.
func NewDispatchOrderCommand(
	orderID kernel.UUID,
	courier, trackingNumber string,
	dispatchedAt time.Time,
	actorID kernel.UUID,
) (DispatchOrderCommand, error) {
	var courierErr, trackingErr, dateErr error
	if strings.TrimSpace(courier) == "" {
		courierErr = errs.NewValueIsRequiredError("courier")
	}
	if strings.TrimSpace(trackingNumber) == "" {
		trackingErr = errs.NewValueIsRequiredError("tracking number")
	}
	if dispatchedAt.IsZero() {
		dateErr = errs.NewValueIsRequiredError("dispatch date")
	}
	if err := errors.Join(orderID.Validate(), actorID.Validate(), courierErr, trackingErr, dateErr); err != nil {
		return DispatchOrderCommand{}, err
	}

	return DispatchOrderCommand{
		orderID:        orderID,
		courier:        strings.TrimSpace(courier),
		trackingNumber: strings.TrimSpace(trackingNumber),
		dispatchedAt:   dispatchedAt,
		actorID:        actorID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

func (c DispatchOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c DispatchOrderCommand) Courier() string         { return c.courier }
func (c DispatchOrderCommand) TrackingNumber() string  { return c.trackingNumber }
func (c DispatchOrderCommand) DispatchedAt() time.Time { return c.dispatchedAt }
func (c DispatchOrderCommand) ActorID() kernel.UUID    { return c.actorID }
