package section

import "fulfillment/internal/pkg/errs"

// Event is something that happened to a section.
type Event int

const (
	EventMaterialShort Event = iota + 1
	EventMaterialSufficient
	EventPacketCompleted
	EventApprovedForDyeing
	EventApprovedForProduction
	EventApprovedAsReadyStock
	EventPacketRejected
	EventDyeingAccepted
	EventDyeingStarted
	EventDyeingCompleted
	EventDyeingRejected
	EventTasksCreated
	EventProductionStarted
	EventProductionCompleted
	EventSentToQA
	EventQAEvidenceAdded
	EventClientApprovalRequested
	EventClientApproved
	EventOrderCompleted
)

func getEventStrings() map[Event]string {
	return map[Event]string{
		EventMaterialShort:           "material_short",
		EventMaterialSufficient:      "material_sufficient",
		EventPacketCompleted:         "packet_completed",
		EventApprovedForDyeing:       "approved_for_dyeing",
		EventApprovedForProduction:   "approved_for_production",
		EventApprovedAsReadyStock:    "approved_as_ready_stock",
		EventPacketRejected:          "packet_rejected",
		EventDyeingAccepted:          "dyeing_accepted",
		EventDyeingStarted:           "dyeing_started",
		EventDyeingCompleted:         "dyeing_completed",
		EventDyeingRejected:          "dyeing_rejected",
		EventTasksCreated:            "tasks_created",
		EventProductionStarted:       "production_started",
		EventProductionCompleted:     "production_completed",
		EventSentToQA:                "sent_to_qa",
		EventQAEvidenceAdded:         "qa_evidence_added",
		EventClientApprovalRequested: "client_approval_requested",
		EventClientApproved:          "client_approved",
		EventOrderCompleted:          "order_completed",
	}
}

func (e Event) String() string {
	if str, ok := getEventStrings()[e]; ok {
		return str
	}
	return "unknown"
}

type transition struct {
	from  Status
	event Event
}

// transitionTable lists every legal (status, event) pair.
func transitionTable() map[transition]Status {
	return map[transition]Status{
		{Pending, EventMaterialShort}:               AwaitingMaterial,
		{Pending, EventMaterialSufficient}:          CreatePacket,
		{AwaitingMaterial, EventMaterialShort}:      AwaitingMaterial,
		{AwaitingMaterial, EventMaterialSufficient}: CreatePacket,
		{CreatePacket, EventMaterialShort}:          AwaitingMaterial,
		{CreatePacket, EventMaterialSufficient}:     CreatePacket,
		{CreatePacket, EventPacketCompleted}:        PacketVerification,
		{CreatePacket, EventPacketRejected}:         CreatePacket,

		{PacketVerification, EventApprovedForDyeing}:     ReadyForDyeing,
		{PacketVerification, EventApprovedForProduction}: ReadyForProduction,
		{PacketVerification, EventApprovedAsReadyStock}:  QAPending,
		{PacketVerification, EventPacketRejected}:        CreatePacket,

		{ReadyForDyeing, EventDyeingAccepted}:    DyeingAccepted,
		{ReadyForDyeing, EventDyeingRejected}:    CreatePacket,
		{DyeingAccepted, EventDyeingStarted}:     DyeingInProgress,
		{DyeingAccepted, EventDyeingRejected}:    CreatePacket,
		{DyeingInProgress, EventDyeingCompleted}: DyeingCompleted,
		{DyeingInProgress, EventDyeingRejected}:  CreatePacket,

		{DyeingCompleted, EventTasksCreated}:         ReadyForProduction,
		{ReadyForProduction, EventTasksCreated}:      ReadyForProduction,
		{ReadyForProduction, EventProductionStarted}: InProduction,
		{InProduction, EventProductionStarted}:       InProduction,
		{InProduction, EventProductionCompleted}:     ProductionCompleted,
		{ProductionCompleted, EventSentToQA}:         QAPending,

		{QAPending, EventQAEvidenceAdded}:                      ReadyForClientApproval,
		{ReadyForClientApproval, EventClientApprovalRequested}: AwaitingClientApproval,
		{AwaitingClientApproval, EventClientApproved}:          ClientApproved,
		{ClientApproved, EventOrderCompleted}:                  Completed,
	}
}

// Next returns the status reached by applying e to s, or a state conflict
// naming every status from which e is legal.
func (s Status) Next(e Event) (Status, error) {
	table := transitionTable()
	if next, ok := table[transition{from: s, event: e}]; ok {
		return next, nil
	}

	return Unknown, errs.NewStateConflictError("section", s.String(), RequiredFor(e)...)
}

// RequiredFor lists, in workflow order, the statuses from which e is legal.
func RequiredFor(e Event) []string {
	table := transitionTable()
	required := make([]string, 0, 4)
	for status := Pending; status <= Completed; status++ {
		if _, ok := table[transition{from: status, event: e}]; ok {
			required = append(required, status.String())
		}
	}
	return required
}
