package section

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the workflow position of one section. Declaration order is workflow order.
type Status int

const (
	Unknown Status = iota
	Pending
	AwaitingMaterial
	CreatePacket
	PacketVerification
	ReadyForDyeing
	DyeingAccepted
	DyeingInProgress
	DyeingCompleted
	ReadyForProduction
	InProduction
	ProductionCompleted
	QAPending
	ReadyForClientApproval
	AwaitingClientApproval
	ClientApproved
	Completed
)

// Stage groups statuses by the department that owns them.
type Stage int

const (
	StageUnknown Stage = iota
	StageIntake
	StageMaterial
	StagePacket
	StageDyeing
	StageProduction
	StageQA
	StageApproval
	StageDone
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                "UNKNOWN",
		Pending:                "PENDING",
		AwaitingMaterial:       "AWAITING_MATERIAL",
		CreatePacket:           "CREATE_PACKET",
		PacketVerification:     "PACKET_VERIFICATION",
		ReadyForDyeing:         "READY_FOR_DYEING",
		DyeingAccepted:         "DYEING_ACCEPTED",
		DyeingInProgress:       "DYEING_IN_PROGRESS",
		DyeingCompleted:        "DYEING_COMPLETED",
		ReadyForProduction:     "READY_FOR_PRODUCTION",
		InProduction:           "IN_PRODUCTION",
		ProductionCompleted:    "PRODUCTION_COMPLETED",
		QAPending:              "QA_PENDING",
		ReadyForClientApproval: "READY_FOR_CLIENT_APPROVAL",
		AwaitingClientApproval: "AWAITING_CLIENT_APPROVAL",
		ClientApproved:         "CLIENT_APPROVED",
		Completed:              "COMPLETED",
	}
}

func getStatusStages() map[Status]Stage {
	return map[Status]Stage{
		Pending:                StageIntake,
		AwaitingMaterial:       StageMaterial,
		CreatePacket:           StagePacket,
		PacketVerification:     StagePacket,
		ReadyForDyeing:         StageDyeing,
		DyeingAccepted:         StageDyeing,
		DyeingInProgress:       StageDyeing,
		DyeingCompleted:        StageDyeing,
		ReadyForProduction:     StageProduction,
		InProduction:           StageProduction,
		ProductionCompleted:    StageProduction,
		QAPending:              StageQA,
		ReadyForClientApproval: StageApproval,
		AwaitingClientApproval: StageApproval,
		ClientApproved:         StageApproval,
		Completed:              StageDone,
	}
}

// ParseStatus maps the wire name back to a Status.
func ParseStatus(raw string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == raw && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("section status", fmt.Errorf("%q is not a section status", raw))
}

func (s Status) Validate() error {
	if _, ok := getStatusStages()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("section status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Stage returns StageUnknown for invalid statuses.
func (s Status) Stage() Stage {
	return getStatusStages()[s]
}

// IsEarly reports whether the section has not left the packet stage yet.
func (s Status) IsEarly() bool {
	stage := s.Stage()
	return stage == StageIntake || stage == StageMaterial || stage == StagePacket
}

// IsBeyondPacketVerification is the protected-status predicate: a section past
// packet verification must never be moved back by packet approval or rejection.
func (s Status) IsBeyondPacketVerification() bool {
	return s > PacketVerification && s.Validate() == nil
}

// IsOpenForMaterialCheck reports whether an inventory check may (re)classify the section.
func (s Status) IsOpenForMaterialCheck() bool {
	return s == Pending || s == AwaitingMaterial || s == CreatePacket
}
