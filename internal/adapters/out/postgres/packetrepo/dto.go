// Package packetrepo persists material packets with their pick lines.
package packetrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"fulfillment/internal/adapters/out/postgres/pgconv"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packet"
)

// PacketDTO represents the database structure of a packet. Rejections are
// append-only history and are kept as a json column.
type PacketDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderItemID          uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Round                int
	IsPartial            bool
	SectionsIncluded     pq.StringArray `gorm:"type:text[]"`
	SectionsPending      pq.StringArray `gorm:"type:text[]"`
	CurrentRoundSections pq.StringArray `gorm:"type:text[]"`
	Status               int            `gorm:"index"`
	AssigneeID           *uuid.UUID     `gorm:"type:uuid;index"`
	AssignedBy           *uuid.UUID     `gorm:"type:uuid"`
	AssignedAt           *time.Time
	StartedAt            *time.Time
	CompletedAt          *time.Time
	ApprovedBy           *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt           *time.Time
	Rejections           []RejectionDTO `gorm:"serializer:json"`
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Lines []LineDTO `gorm:"foreignKey:PacketID;constraint:OnDelete:CASCADE"`
}

func (PacketDTO) TableName() string {
	return "packets"
}

// LineDTO is one pick-list entry of a packet.
type LineDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	PacketID        uuid.UUID `gorm:"type:uuid;index"`
	Position        int
	InventoryItemID uuid.UUID `gorm:"type:uuid"`
	ItemName        string
	Section         string
	Required        float64
	Picked          float64
	Unit            string
	RackLocation    string
	IsPicked        bool
	Round           int
}

func (LineDTO) TableName() string {
	return "packet_lines"
}

type RejectionDTO struct {
	Round    int       `json:"round"`
	Code     string    `json:"code"`
	Reason   string    `json:"reason"`
	By       uuid.UUID `json:"by"`
	At       time.Time `json:"at"`
	Sections []string  `json:"sections"`
}

func packetFromDomain(p *packet.Packet) PacketDTO {
	state := p.State()
	dto := PacketDTO{
		ID:                   state.ID.Bytes(),
		OrderItemID:          state.OrderItemID.Bytes(),
		Round:                state.Round,
		IsPartial:            state.IsPartial,
		SectionsIncluded:     pgconv.Sections(state.SectionsIncluded),
		SectionsPending:      pgconv.Sections(state.SectionsPending),
		CurrentRoundSections: pgconv.Sections(state.CurrentRoundSections),
		Status:               int(state.Status),
		AssigneeID:           pgconv.OptionalID(state.AssigneeID),
		AssignedBy:           pgconv.OptionalID(state.AssignedBy),
		AssignedAt:           state.AssignedAt,
		StartedAt:            state.StartedAt,
		CompletedAt:          state.CompletedAt,
		ApprovedBy:           pgconv.OptionalID(state.ApprovedBy),
		ApprovedAt:           state.ApprovedAt,
		Rejections:           make([]RejectionDTO, 0, len(state.Rejections)),
		CreatedAt:            state.CreatedAt,
		UpdatedAt:            state.UpdatedAt,
		Lines:                make([]LineDTO, 0, len(state.Lines)),
	}
	for _, r := range state.Rejections {
		dto.Rejections = append(dto.Rejections, RejectionDTO{
			Round:    r.Round,
			Code:     r.Code,
			Reason:   r.Reason,
			By:       r.By.Bytes(),
			At:       r.At,
			Sections: kernel.SectionStrings(r.Sections),
		})
	}
	for i, l := range state.Lines {
		dto.Lines = append(dto.Lines, LineDTO{
			ID:              l.ID.Bytes(),
			PacketID:        dto.ID,
			Position:        i,
			InventoryItemID: l.InventoryItemID.Bytes(),
			ItemName:        l.ItemName,
			Section:         l.Section.String(),
			Required:        l.Required,
			Picked:          l.Picked,
			Unit:            l.Unit,
			RackLocation:    l.RackLocation,
			IsPicked:        l.IsPicked,
			Round:           l.Round,
		})
	}
	return dto
}

func packetToDomain(dto PacketDTO) (*packet.Packet, error) {
	state := packet.State{
		Round:                dto.Round,
		IsPartial:            dto.IsPartial,
		SectionsIncluded:     pgconv.FromSections(dto.SectionsIncluded),
		SectionsPending:      pgconv.FromSections(dto.SectionsPending),
		CurrentRoundSections: pgconv.FromSections(dto.CurrentRoundSections),
		Status:               packet.Status(dto.Status),
		AssignedAt:           dto.AssignedAt,
		StartedAt:            dto.StartedAt,
		CompletedAt:          dto.CompletedAt,
		ApprovedAt:           dto.ApprovedAt,
		CreatedAt:            dto.CreatedAt,
		UpdatedAt:            dto.UpdatedAt,
		Rejections:           make([]packet.Rejection, 0, len(dto.Rejections)),
		Lines:                make([]packet.Line, 0, len(dto.Lines)),
	}

	var err error
	if state.ID, err = pgconv.ID(dto.ID); err != nil {
		return nil, err
	}
	if state.OrderItemID, err = pgconv.ID(dto.OrderItemID); err != nil {
		return nil, err
	}
	if state.AssigneeID, err = pgconv.FromOptionalID(dto.AssigneeID); err != nil {
		return nil, err
	}
	if state.AssignedBy, err = pgconv.FromOptionalID(dto.AssignedBy); err != nil {
		return nil, err
	}
	if state.ApprovedBy, err = pgconv.FromOptionalID(dto.ApprovedBy); err != nil {
		return nil, err
	}

	for _, r := range dto.Rejections {
		var by kernel.UUID
		if by, err = pgconv.ID(r.By); err != nil {
			return nil, err
		}
		state.Rejections = append(state.Rejections, packet.Rejection{
			Round:    r.Round,
			Code:     r.Code,
			Reason:   r.Reason,
			By:       by,
			At:       r.At,
			Sections: pgconv.FromSections(r.Sections),
		})
	}
	for _, l := range dto.Lines {
		line := packet.Line{
			ItemName:     l.ItemName,
			Section:      kernel.Section(l.Section),
			Required:     l.Required,
			Picked:       l.Picked,
			Unit:         l.Unit,
			RackLocation: l.RackLocation,
			IsPicked:     l.IsPicked,
			Round:        l.Round,
		}
		if line.ID, err = pgconv.ID(l.ID); err != nil {
			return nil, err
		}
		if line.InventoryItemID, err = pgconv.ID(l.InventoryItemID); err != nil {
			return nil, err
		}
		state.Lines = append(state.Lines, line)
	}

	return packet.RestorePacket(state)
}
