package orderitem

import (
	"fulfillment/internal/core/domain/model/section"
)

// Aggregate derives the order item status from the multiset of section
// statuses and the packet phase. It is pure and total: every input, including
// an empty one, maps to exactly one status.
//
// Precedence, highest first:
//  1. no sections -> INVENTORY_CHECK; all COMPLETED -> COMPLETED
//  2. dyeing alongside intake/material/packet -> PARTIALLY_IN_DYEING
//  3. production or later alongside intake/material/packet -> PARTIAL_IN_PRODUCTION
//  4. otherwise the least advanced stage decides
func Aggregate(statuses []section.Status, phase PacketPhase) Status {
	if len(statuses) == 0 {
		return InventoryCheck
	}

	var (
		early, dyeing, laterThanDyeing bool
		allCompleted                   = true
		least                          = section.StageDone
	)
	for _, s := range statuses {
		stage := s.Stage()
		if stage == section.StageUnknown {
			stage = section.StageIntake
		}
		switch {
		case stage <= section.StagePacket:
			early = true
		case stage == section.StageDyeing:
			dyeing = true
		default:
			laterThanDyeing = true
		}
		if s != section.Completed {
			allCompleted = false
		}
		if stage < least {
			least = stage
		}
	}

	switch {
	case allCompleted:
		return Completed
	case early && dyeing:
		return PartiallyInDyeing
	case early && laterThanDyeing:
		return PartialInProduction
	}

	switch least {
	case section.StageIntake, section.StageMaterial, section.StagePacket:
		return aggregateBeforeDyeing(statuses, phase)
	case section.StageDyeing:
		return aggregateDyeing(statuses, laterThanDyeing)
	case section.StageProduction:
		return aggregateProduction(statuses)
	case section.StageQA:
		return QualityAssurance
	case section.StageApproval:
		if all(statuses, func(s section.Status) bool { return s >= section.ClientApproved }) {
			return ClientApproved
		}
		return AwaitingClientApproval
	default:
		return Completed
	}
}

func aggregateBeforeDyeing(statuses []section.Status, phase PacketPhase) Status {
	switch {
	case anyOf(statuses, section.Pending, section.Unknown):
		return InventoryCheck
	case anyOf(statuses, section.PacketVerification):
		return PacketVerification
	case phase != PacketNone && anyOf(statuses, section.CreatePacket):
		return CreatePacket
	case anyOf(statuses, section.AwaitingMaterial):
		return AwaitingMaterial
	default:
		return ReadyForProduction
	}
}

func aggregateDyeing(statuses []section.Status, laterThanDyeing bool) Status {
	switch {
	case laterThanDyeing:
		return PartialInProduction
	case all(statuses, func(s section.Status) bool { return s == section.ReadyForDyeing }):
		return ReadyForDyeing
	case all(statuses, func(s section.Status) bool { return s == section.DyeingCompleted }):
		return DyeingCompleted
	default:
		return InDyeing
	}
}

func aggregateProduction(statuses []section.Status) Status {
	done := func(s section.Status) bool { return s >= section.ProductionCompleted }
	switch {
	case all(statuses, done):
		return ProductionCompleted
	case some(statuses, done):
		return PartialInProduction
	case anyOf(statuses, section.InProduction):
		return InProduction
	default:
		return ReadyForProduction
	}
}

func anyOf(statuses []section.Status, targets ...section.Status) bool {
	for _, s := range statuses {
		for _, t := range targets {
			if s == t {
				return true
			}
		}
	}
	return false
}

func all(statuses []section.Status, pred func(section.Status) bool) bool {
	for _, s := range statuses {
		if !pred(s) {
			return false
		}
	}
	return true
}

func some(statuses []section.Status, pred func(section.Status) bool) bool {
	for _, s := range statuses {
		if pred(s) {
			return true
		}
	}
	return false
}
