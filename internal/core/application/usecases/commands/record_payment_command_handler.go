package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/timeline"
)

// RecordPaymentCommandHandler appends a payment to an order. Overpayment is rejected.
type RecordPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRecordPaymentCommandHandler(uowFactory OrderUoWFactory) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	payment, err := order.NewPayment(kernel.NewUUID(), cmd.Amount(), cmd.Method(), cmd.Reference(), cmd.ReceivedAt())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := clock()
	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = o.RecordPayment(payment, now); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	n := note{
		actor:   cmd.ActorID().String(),
		details: fmt.Sprintf("%d via %s, balance %d", payment.Amount, payment.Method, o.Balance()),
	}
	if err = appendEntry(ctx, uow.TimelineRepository(), o.ID(), nil, timeline.ActionPaymentRecorded, n, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
