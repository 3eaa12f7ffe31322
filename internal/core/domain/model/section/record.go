package section

import (
	"maps"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// QAData is the verification evidence attached to a section.
type QAData struct {
	VideoURL string
	AddedBy  kernel.UUID
	AddedAt  time.Time
}

// Record is the status of one section together with its transition timestamps
// and the annexes written by the individual workflows. Records are values:
// Apply returns a modified copy.
type Record struct {
	Status      Status
	UpdatedAt   time.Time
	Transitions map[Status]time.Time

	DyeingAcceptedBy      *kernel.UUID
	DyeingRejectionCode   string
	DyeingRejectionNotes  string
	PacketRejectedAt      *time.Time
	PacketRejectionReason string
	QA                    *QAData
	ClientApprovedAt      *time.Time
}

// NewRecord returns a record in Pending.
func NewRecord(now time.Time) Record {
	return Record{
		Status:      Pending,
		UpdatedAt:   now,
		Transitions: map[Status]time.Time{Pending: now},
	}
}

// Apply moves the record through the transition table and stamps the new status.
func (r Record) Apply(e Event, now time.Time) (Record, error) {
	next, err := r.Status.Next(e)
	if err != nil {
		return Record{}, err
	}

	out := r.Clone()
	out.Status = next
	out.UpdatedAt = now
	out.Transitions[next] = now
	return out, nil
}

// Clone deep-copies the record.
func (r Record) Clone() Record {
	out := r
	out.Transitions = make(map[Status]time.Time, len(r.Transitions))
	maps.Copy(out.Transitions, r.Transitions)
	if r.DyeingAcceptedBy != nil {
		id := *r.DyeingAcceptedBy
		out.DyeingAcceptedBy = &id
	}
	if r.PacketRejectedAt != nil {
		at := *r.PacketRejectedAt
		out.PacketRejectedAt = &at
	}
	if r.QA != nil {
		qa := *r.QA
		out.QA = &qa
	}
	if r.ClientApprovedAt != nil {
		at := *r.ClientApprovedAt
		out.ClientApprovedAt = &at
	}
	return out
}
