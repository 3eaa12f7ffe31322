package orderitem

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the overall position of an order item. Apart from Dispatched it is
// always derived from the section statuses by Aggregate.
type Status int

const (
	Unknown Status = iota
	InventoryCheck
	AwaitingMaterial
	ReadyForProduction
	CreatePacket
	PacketVerification
	ReadyForDyeing
	InDyeing
	DyeingCompleted
	PartiallyInDyeing
	InProduction
	PartialInProduction
	ProductionCompleted
	QualityAssurance
	AwaitingClientApproval
	ClientApproved
	Dispatched
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                "UNKNOWN",
		InventoryCheck:         "INVENTORY_CHECK",
		AwaitingMaterial:       "AWAITING_MATERIAL",
		ReadyForProduction:     "READY_FOR_PRODUCTION",
		CreatePacket:           "CREATE_PACKET",
		PacketVerification:     "PACKET_VERIFICATION",
		ReadyForDyeing:         "READY_FOR_DYEING",
		InDyeing:               "IN_DYEING",
		DyeingCompleted:        "DYEING_COMPLETED",
		PartiallyInDyeing:      "PARTIALLY_IN_DYEING",
		InProduction:           "IN_PRODUCTION",
		PartialInProduction:    "PARTIAL_IN_PRODUCTION",
		ProductionCompleted:    "PRODUCTION_COMPLETED",
		QualityAssurance:       "QUALITY_ASSURANCE",
		AwaitingClientApproval: "AWAITING_CLIENT_APPROVAL",
		ClientApproved:         "CLIENT_APPROVED",
		Dispatched:             "DISPATCHED",
		Completed:              "COMPLETED",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if s <= Unknown || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("order item status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ParseStatus maps the wire name back to a Status.
func ParseStatus(raw string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == raw && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("order item status", fmt.Errorf("%q is not a status", raw))
}

// PacketPhase is the part of the packet state the aggregator needs.
type PacketPhase int

const (
	PacketNone PacketPhase = iota
	PacketActive
	PacketCompleted
	PacketApproved
)

func (p PacketPhase) String() string {
	switch p {
	case PacketNone:
		return "NONE"
	case PacketActive:
		return "ACTIVE"
	case PacketCompleted:
		return "COMPLETED"
	case PacketApproved:
		return "APPROVED"
	default:
		return "UNKNOWN"
	}
}
