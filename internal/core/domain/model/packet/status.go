package packet

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of a packet.
//
//	Unassigned ──> Assigned ──> InProgress ──> Completed ──┬──> Approved
//	                  ▲                                    │
//	                  └────────────── Rejected <───────────┘
//
// Approved packets may open a further round (back to Unassigned) or a rework
// round for a section rejected in dyeing (back to Assigned).
type Status int

const (
	Unknown Status = iota
	Unassigned
	Assigned
	InProgress
	Completed
	Approved
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Unassigned: "UNASSIGNED",
		Assigned:   "ASSIGNED",
		InProgress: "IN_PROGRESS",
		Completed:  "COMPLETED",
		Approved:   "APPROVED",
		Rejected:   "REJECTED",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if s <= Unknown || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("packet status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func ParseStatus(raw string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	for s, str := range getStatusStrings() {
		if s != Unknown && str == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("packet status", fmt.Errorf("%q is not a valid status", raw))
}

// Event drives the packet state machine.
type Event int

const (
	EventAssign Event = iota + 1
	EventStart
	EventComplete
	EventApprove
	EventReject
	EventRework
	EventOpenRound
)

type transition struct {
	from  Status
	event Event
}

func transitionTable() map[transition]Status {
	return map[transition]Status{
		{Unassigned, EventAssign}:   Assigned,
		{Assigned, EventAssign}:     Assigned,
		{Assigned, EventStart}:      InProgress,
		{InProgress, EventComplete}: Completed,
		{Completed, EventApprove}:   Approved,
		{Completed, EventReject}:    Rejected,
		{Rejected, EventRework}:     Assigned,
		{Completed, EventRework}:    Assigned,
		{Approved, EventRework}:     Assigned,
		{Unassigned, EventRework}:   Assigned,
		{Approved, EventOpenRound}:  Unassigned,
	}
}

// Next returns the status reached by e, or a state conflict listing the
// statuses from which e is legal.
func (s Status) Next(e Event) (Status, error) {
	table := transitionTable()
	if next, ok := table[transition{from: s, event: e}]; ok {
		return next, nil
	}

	required := make([]string, 0, 2)
	for from := Unassigned; from <= Rejected; from++ {
		if _, ok := table[transition{from: from, event: e}]; ok {
			required = append(required, from.String())
		}
	}
	return Unknown, errs.NewStateConflictError("packet", s.String(), required...)
}
