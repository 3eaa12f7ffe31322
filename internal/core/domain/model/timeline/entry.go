// Package timeline holds the append-only audit trail of orders and order items.
package timeline

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Action names what happened.
type Action string

const (
	ActionOrderCreated        Action = "order_created"
	ActionPaymentRecorded     Action = "payment_recorded"
	ActionInventoryChecked    Action = "inventory_checked"
	ActionPacketCreated       Action = "packet_created"
	ActionPacketAssigned      Action = "packet_assigned"
	ActionPacketStarted       Action = "packet_started"
	ActionPacketCompleted     Action = "packet_completed"
	ActionPacketApproved      Action = "packet_approved"
	ActionPacketRejected      Action = "packet_rejected"
	ActionSectionsApproved    Action = "packet_sections_approved"
	ActionDyeingAccepted      Action = "dyeing_accepted"
	ActionDyeingStarted       Action = "dyeing_started"
	ActionDyeingCompleted     Action = "dyeing_completed"
	ActionDyeingRejected      Action = "dyeing_rejected"
	ActionHeadAssigned        Action = "production_head_assigned"
	ActionTasksCreated        Action = "production_tasks_created"
	ActionTaskStarted         Action = "production_task_started"
	ActionTaskCompleted       Action = "production_task_completed"
	ActionSentToQA            Action = "sent_to_qa"
	ActionQAEvidenceAdded     Action = "qa_evidence_added"
	ActionClientApprovalAsked Action = "client_approval_requested"
	ActionClientApproved      Action = "client_approved"
	ActionOrderDispatched     Action = "order_dispatched"
	ActionOrderCompleted      Action = "order_completed"
	ActionOrderUrgencyChanged Action = "order_urgency_changed"
)

// SystemActor marks entries written without a human caller.
const SystemActor = "system"

// Entry is immutable once created.
type Entry struct {
	id          kernel.UUID
	orderID     kernel.UUID
	orderItemID *kernel.UUID
	action      Action
	actor       string
	details     string
	createdAt   time.Time
}

// NewEntry creates an entry attached to an order and, optionally, one of its items.
func NewEntry(
	orderID kernel.UUID,
	orderItemID *kernel.UUID,
	action Action,
	actor string,
	details string,
	now time.Time,
) (Entry, error) {
	if err := orderID.Validate(); err != nil {
		return Entry{}, err
	}
	if orderItemID != nil {
		if err := orderItemID.Validate(); err != nil {
			return Entry{}, err
		}
	}
	var actionErr, actorErr error
	if strings.TrimSpace(string(action)) == "" {
		actionErr = errs.NewValueIsRequiredError("action")
	}
	if strings.TrimSpace(actor) == "" {
		actorErr = errs.NewValueIsRequiredError("actor")
	}
	if err := errors.Join(actionErr, actorErr); err != nil {
		return Entry{}, err
	}

	var itemID *kernel.UUID
	if orderItemID != nil {
		id := *orderItemID
		itemID = &id
	}

	return Entry{
		id:          kernel.NewUUID(),
		orderID:     orderID,
		orderItemID: itemID,
		action:      action,
		actor:       actor,
		details:     details,
		createdAt:   now,
	}, nil
}

// RestoreEntry rebuilds a persisted entry.
func RestoreEntry(
	id, orderID kernel.UUID,
	orderItemID *kernel.UUID,
	action Action,
	actor, details string,
	createdAt time.Time,
) Entry {
	return Entry{
		id:          id,
		orderID:     orderID,
		orderItemID: orderItemID,
		action:      action,
		actor:       actor,
		details:     details,
		createdAt:   createdAt,
	}
}

func (e Entry) ID() kernel.UUID           { return e.id }
func (e Entry) OrderID() kernel.UUID      { return e.orderID }
func (e Entry) OrderItemID() *kernel.UUID { return e.orderItemID }
func (e Entry) Action() Action            { return e.action }
func (e Entry) Actor() string             { return e.actor }
func (e Entry) Details() string           { return e.details }
func (e Entry) CreatedAt() time.Time      { return e.createdAt }
