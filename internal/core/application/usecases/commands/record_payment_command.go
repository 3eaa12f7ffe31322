package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand books an amount received against an order.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	amount     int64
	method     string
	reference  string
	receivedAt time.Time
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewRecordPaymentCommand(
	orderID kernel.UUID,
	amount int64,
	method, reference string,
	receivedAt time.Time,
	actorID kernel.UUID,
) (RecordPaymentCommand, error) {
	var amountErr, dateErr error
	if amount <= 0 {
		amountErr = errs.NewValueIsOutOfRangeError("amount", amount, 1, "balance")
	}
	if receivedAt.IsZero() {
		dateErr = errs.NewValueIsRequiredError("received at")
	}
	if err := errors.Join(orderID.Validate(), actorID.Validate(), amountErr, dateErr); err != nil {
		return RecordPaymentCommand{}, err
	}

	return RecordPaymentCommand{
		orderID:    orderID,
		amount:     amount,
		method:     method,
		reference:  reference,
		receivedAt: receivedAt,
		actorID:    actorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

func (c RecordPaymentCommand) OrderID() kernel.UUID  { return c.orderID }
func (c RecordPaymentCommand) Amount() int64         { return c.amount }
func (c RecordPaymentCommand) Method() string        { return c.method }
func (c RecordPaymentCommand) Reference() string     { return c.reference }
func (c RecordPaymentCommand) ReceivedAt() time.Time { return c.receivedAt }
func (c RecordPaymentCommand) ActorID() kernel.UUID  { return c.actorID }
