package orderitem

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/section"
	"fulfillment/internal/pkg/errs"
)

// IsEligibleForHead reports whether the item waits for a production head:
// no head yet and at least one section ready for production or done dyeing.
func (i *OrderItem) IsEligibleForHead() bool {
	if i.productionHeadID != nil {
		return false
	}
	for _, rec := range i.sections {
		if rec.Status == section.ReadyForProduction || rec.Status == section.DyeingCompleted {
			return true
		}
	}
	return false
}

// AssignProductionHead binds the head. The binding is permanent.
func (i *OrderItem) AssignProductionHead(headID kernel.UUID, now time.Time) error {
	if err := headID.Validate(); err != nil {
		return err
	}
	if i.productionHeadID != nil {
		return errs.NewStateConflictError("production head", "assigned to "+i.productionHeadID.String(), "unassigned")
	}
	if !i.IsEligibleForHead() {
		return errs.NewIncompletePreconditionError("no section is ready for production or done dyeing")
	}
	id := headID
	i.productionHeadID = &id
	i.updatedAt = now
	return nil
}

// PrepareProduction records that the task chain of s was created.
func (i *OrderItem) PrepareProduction(s kernel.Section, now time.Time) error {
	if i.productionHeadID == nil {
		return errs.NewIncompletePreconditionError("production head is not assigned")
	}
	return i.applyAll([]kernel.Section{s}, section.EventTasksCreated, now, nil)
}

// StartProduction is idempotent for a section already in production.
func (i *OrderItem) StartProduction(s kernel.Section, now time.Time) error {
	return i.applyAll([]kernel.Section{s}, section.EventProductionStarted, now, nil)
}

func (i *OrderItem) CompleteProduction(s kernel.Section, now time.Time) error {
	return i.applyAll([]kernel.Section{s}, section.EventProductionCompleted, now, nil)
}

func (i *OrderItem) SendToQA(sections []kernel.Section, now time.Time) error {
	return i.applyAll(sections, section.EventSentToQA, now, nil)
}
