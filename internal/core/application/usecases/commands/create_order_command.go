package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// NewItem is one garment line of a new order. The caller chooses the id so
// that it can refer to the item right after creation.
type NewItem struct {
	ID   kernel.UUID
	Spec orderitem.Spec
}

// CreateOrderCommand represents the intake of a customer order with its garments.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customer, 250_000, &fwd,
//	    []NewItem{{ID: kernel.NewUUID(), Spec: spec}}, userID)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	customer    order.Customer
	totalAmount int64
	fwdDate     *time.Time
	items       []NewItem
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the shape of the order. Garment level rules
// such as custom size requiring its own BOM are enforced by the aggregates.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customer order.Customer,
	totalAmount int64,
	fwdDate *time.Time,
	items []NewItem,
	actorID kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customer:    customer,
		totalAmount: totalAmount,
		fwdDate:     fwdDate,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
		cmd.setActor(actorID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID     { return c.orderID }
func (c CreateOrderCommand) Customer() order.Customer { return c.customer }
func (c CreateOrderCommand) TotalAmount() int64       { return c.totalAmount }
func (c CreateOrderCommand) FwdDate() *time.Time      { return c.fwdDate }
func (c CreateOrderCommand) Items() []NewItem         { return c.items }
func (c CreateOrderCommand) ActorID() kernel.UUID     { return c.actorID }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setItems(items []NewItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.ID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("item id", fmt.Errorf("item %d: %w", i+1, err))
		}
		if strings.TrimSpace(item.Spec.Size) == "" {
			return errs.NewValueIsRequiredErrorWithCause("size", fmt.Errorf("item %d", i+1))
		}
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setActor(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}

	c.actorID = actorID
	return nil
}
