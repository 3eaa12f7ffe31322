package orderitem

import (
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/section"
	"fulfillment/internal/pkg/errs"
)

// Route is where approved packet sections go next.
type Route int

const (
	RouteProduction Route = iota + 1
	RouteDyeing
	RouteReadyStock
)

func (r Route) event() section.Event {
	switch r {
	case RouteDyeing:
		return section.EventApprovedForDyeing
	case RouteReadyStock:
		return section.EventApprovedAsReadyStock
	default:
		return section.EventApprovedForProduction
	}
}

// ApprovalRoute picks the route for an approval. Ready stock wins over dyeing.
func (i *OrderItem) ApprovalRoute(isReadyStock bool) Route {
	switch {
	case isReadyStock:
		return RouteReadyStock
	case i.requiresDyeing:
		return RouteDyeing
	default:
		return RouteProduction
	}
}

// CheckableSections returns the sections an inventory check may (re)evaluate:
// those still open for a material check and not yet pulled into the packet.
// A check is refused while a packet is assigned, in progress or awaiting verification.
func (i *OrderItem) CheckableSections(packetSections []kernel.Section) ([]kernel.Section, error) {
	if i.packetPhase == PacketActive || i.packetPhase == PacketCompleted {
		return nil, errs.NewStateConflictError("packet", i.packetPhase.String(),
			PacketNone.String(), PacketApproved.String())
	}

	open := make([]kernel.Section, 0, len(i.sections))
	for s, rec := range i.sections {
		if rec.Status.IsOpenForMaterialCheck() && !kernel.ContainsSection(packetSections, s) {
			open = append(open, s)
		}
	}
	if len(open) == 0 {
		return nil, errs.NewStateConflictError("order item", i.status.String(),
			InventoryCheck.String(), AwaitingMaterial.String())
	}
	return kernel.SortSections(open), nil
}

// ApplyInventoryCheck moves every open section to AWAITING_MATERIAL or
// CREATE_PACKET and replaces the stored requirements.
func (i *OrderItem) ApplyInventoryCheck(
	open []kernel.Section,
	short []kernel.Section,
	requirements []MaterialRequirement,
	now time.Time,
) error {
	changes := make([]change, 0, len(open))
	for _, s := range open {
		e := section.EventMaterialSufficient
		if kernel.ContainsSection(short, s) {
			e = section.EventMaterialShort
		}
		changes = append(changes, change{section: s, event: e})
	}
	if err := i.apply(changes, now, nil); err != nil {
		return err
	}
	i.materialRequirements = cloneRequirements(requirements)
	return nil
}

// CompletePacketRound moves the round's sections still in CREATE_PACKET to
// PACKET_VERIFICATION. Anything else in the round keeps its status.
func (i *OrderItem) CompletePacketRound(round []kernel.Section, phase PacketPhase, now time.Time) error {
	targets := make([]kernel.Section, 0, len(round))
	for _, s := range round {
		if rec, ok := i.sections[s]; ok && rec.Status == section.CreatePacket && !slices.Contains(targets, s) {
			targets = append(targets, s)
		}
	}

	i.packetPhase = phase
	if len(targets) == 0 {
		i.recompute()
		return nil
	}
	return i.applyAll(targets, section.EventPacketCompleted, now, nil)
}

// ApprovePacket routes every included section that awaits verification and
// returns the sections it advanced.
func (i *OrderItem) ApprovePacket(
	included []kernel.Section,
	route Route,
	phase PacketPhase,
	now time.Time,
) ([]kernel.Section, error) {
	targets := make([]kernel.Section, 0, len(included))
	for _, s := range included {
		if rec, ok := i.sections[s]; ok && rec.Status == section.PacketVerification {
			targets = append(targets, s)
		}
	}

	i.packetPhase = phase
	if len(targets) == 0 {
		i.recompute()
		return nil, nil
	}
	if err := i.applyAll(targets, route.event(), now, nil); err != nil {
		return nil, err
	}
	return kernel.SortSections(targets), nil
}

// ApproveSpecificSections approves the named sections ahead of the rest of the
// packet. Sections still in CREATE_PACKET are completed first, which requires
// their lines to be picked, as reported by isPicked.
func (i *OrderItem) ApproveSpecificSections(
	named []kernel.Section,
	included []kernel.Section,
	route Route,
	isPicked func(kernel.Section) bool,
	phase PacketPhase,
	now time.Time,
) error {
	if len(named) == 0 {
		return errs.NewValueIsRequiredError("sections")
	}

	changes := make([]change, 0, len(named)*2)
	unpicked := make([]string, 0)
	for _, s := range named {
		if !kernel.ContainsSection(included, s) {
			return errs.NewValueIsInvalidErrorWithCause("sections",
				errs.NewObjectNotFoundError("packet section", s.String()))
		}
		rec, ok := i.sections[s]
		if !ok {
			return errs.NewObjectNotFoundError("section", s.String())
		}

		switch rec.Status {
		case section.CreatePacket:
			if !isPicked(s) {
				unpicked = append(unpicked, s.String())
				continue
			}
			changes = append(changes, change{section: s, event: section.EventPacketCompleted})
		case section.PacketVerification:
		default:
			return errs.NewStateConflictError("section "+s.String(), rec.Status.String(),
				section.CreatePacket.String(), section.PacketVerification.String())
		}
		changes = append(changes, change{section: s, event: route.event()})
	}
	if len(unpicked) > 0 {
		return errs.NewIncompletePreconditionError("packet lines are not picked", unpicked...)
	}

	i.packetPhase = phase
	return i.apply(changes, now, nil)
}

// RejectPacket sends the in-scope sections back to CREATE_PACKET and returns
// them. Sections already past verification keep their progress.
func (i *OrderItem) RejectPacket(scope []kernel.Section, reason string, phase PacketPhase, now time.Time) ([]kernel.Section, error) {
	if reason == "" {
		return nil, errs.NewValueIsRequiredError("reason")
	}

	targets := make([]kernel.Section, 0, len(scope))
	for _, s := range scope {
		rec, ok := i.sections[s]
		if !ok {
			continue
		}
		if rec.Status == section.PacketVerification || rec.Status == section.CreatePacket {
			targets = append(targets, s)
		}
	}

	i.packetPhase = phase
	if len(targets) == 0 {
		i.recompute()
		return nil, nil
	}

	err := i.applyAll(targets, section.EventPacketRejected, now, func(_ kernel.Section, rec *section.Record) {
		at := now
		rec.PacketRejectedAt = &at
		rec.PacketRejectionReason = reason
	})
	if err != nil {
		return nil, err
	}
	return kernel.SortSections(targets), nil
}
