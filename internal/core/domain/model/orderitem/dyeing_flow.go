package orderitem

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/section"
	"fulfillment/internal/pkg/errs"
)

// AcceptDyeing lets worker take the given sections. Only one worker may hold
// dyeing acceptance for an item at a time.
func (i *OrderItem) AcceptDyeing(worker kernel.UUID, sections []kernel.Section, now time.Time) error {
	if err := worker.Validate(); err != nil {
		return err
	}
	if i.dyeingHolderID != nil && !i.dyeingHolderID.IsEqual(worker) {
		return errs.NewStateConflictError("dyeing", "held by "+i.dyeingHolderID.String(), "released")
	}

	err := i.applyAll(sections, section.EventDyeingAccepted, now, func(_ kernel.Section, rec *section.Record) {
		id := worker
		rec.DyeingAcceptedBy = &id
		rec.DyeingRejectionCode = ""
		rec.DyeingRejectionNotes = ""
	})
	if err != nil {
		return err
	}
	holder := worker
	i.dyeingHolderID = &holder
	return nil
}

// StartDyeing moves accepted sections to DYEING_IN_PROGRESS.
func (i *OrderItem) StartDyeing(worker kernel.UUID, sections []kernel.Section, now time.Time) error {
	if err := i.requireDyeingHolder(worker, sections); err != nil {
		return err
	}
	return i.applyAll(sections, section.EventDyeingStarted, now, nil)
}

// CompleteDyeing moves sections to DYEING_COMPLETED and releases the holder
// once nothing is held anymore.
func (i *OrderItem) CompleteDyeing(worker kernel.UUID, sections []kernel.Section, now time.Time) error {
	if err := i.requireDyeingHolder(worker, sections); err != nil {
		return err
	}
	if err := i.applyAll(sections, section.EventDyeingCompleted, now, nil); err != nil {
		return err
	}
	i.releaseDyeingHolder()
	return nil
}

// RejectDyeing sends sections back to CREATE_PACKET for rework. Notes are mandatory.
func (i *OrderItem) RejectDyeing(sections []kernel.Section, code, notes string, now time.Time) error {
	if notes == "" {
		return errs.NewValueIsRequiredError("notes")
	}

	err := i.applyAll(sections, section.EventDyeingRejected, now, func(_ kernel.Section, rec *section.Record) {
		rec.DyeingAcceptedBy = nil
		rec.DyeingRejectionCode = code
		rec.DyeingRejectionNotes = notes
	})
	if err != nil {
		return err
	}
	i.releaseDyeingHolder()
	return nil
}

func (i *OrderItem) requireDyeingHolder(worker kernel.UUID, sections []kernel.Section) error {
	if err := worker.Validate(); err != nil {
		return err
	}
	if i.dyeingHolderID == nil || !i.dyeingHolderID.IsEqual(worker) {
		return errs.NewStateConflictError("dyeing", "not held by "+worker.String(), "held by "+worker.String())
	}
	for _, s := range sections {
		rec, ok := i.sections[s]
		if !ok {
			return errs.NewObjectNotFoundError("section", s.String())
		}
		if rec.DyeingAcceptedBy != nil && !rec.DyeingAcceptedBy.IsEqual(worker) {
			return errs.NewStateConflictError("section "+s.String(), "accepted by "+rec.DyeingAcceptedBy.String(),
				"accepted by "+worker.String())
		}
	}
	return nil
}

func (i *OrderItem) releaseDyeingHolder() {
	for _, rec := range i.sections {
		if rec.Status == section.DyeingAccepted || rec.Status == section.DyeingInProgress {
			return
		}
	}
	i.dyeingHolderID = nil
}
