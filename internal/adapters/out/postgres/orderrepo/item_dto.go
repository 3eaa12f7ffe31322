package orderrepo

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"fulfillment/internal/adapters/out/postgres/pgconv"
	"fulfillment/internal/core/domain/model/bom"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/section"
)

// OrderItemDTO represents one garment of an order. Section records, material
// requirements and custom BOM lines are child tables.
type OrderItemDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;index"`
	ProductID        uuid.UUID `gorm:"type:uuid"`
	Size             string
	Quantity         int
	BasePieces       pq.StringArray `gorm:"type:text[]"`
	AddOnPieces      pq.StringArray `gorm:"type:text[]"`
	RequiresDyeing   bool
	Status           int        `gorm:"index"`
	ProductionHeadID *uuid.UUID `gorm:"type:uuid;index"`
	DyeingHolderID   *uuid.UUID `gorm:"type:uuid"`
	PacketPhase      int
	Version          int
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time

	Sections     []SectionDTO      `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE"`
	Requirements []RequirementDTO  `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE"`
	CustomBOM    []CustomBOMLineDTO `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// SectionDTO is the workflow record of one garment piece.
type SectionDTO struct {
	OrderItemID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Section               string    `gorm:"primaryKey"`
	Status                int       `gorm:"index"`
	UpdatedAt             time.Time
	Transitions           map[section.Status]time.Time `gorm:"serializer:json"`
	DyeingAcceptedBy      *uuid.UUID                   `gorm:"type:uuid"`
	DyeingRejectionCode   string
	DyeingRejectionNotes  string
	PacketRejectedAt      *time.Time
	PacketRejectionReason string
	QAVideoURL            string
	QAAddedBy             *uuid.UUID `gorm:"type:uuid"`
	QAAddedAt             *time.Time
	ClientApprovedAt      *time.Time
}

func (SectionDTO) TableName() string {
	return "order_item_sections"
}

// RequirementDTO is one consolidated line of the last inventory check.
type RequirementDTO struct {
	OrderItemID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	InventoryItemID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position        int
	ItemName        string
	Unit            string
	RackLocation    string
	Required        float64
	Available       float64
	Shortage        float64
	Availability    string
	Shares          map[kernel.Section]float64 `gorm:"serializer:json"`
}

func (RequirementDTO) TableName() string {
	return "material_requirements"
}

// CustomBOMLineDTO is one material line of a custom sized item.
type CustomBOMLineDTO struct {
	OrderItemID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position        int       `gorm:"primaryKey"`
	InventoryItemID uuid.UUID `gorm:"type:uuid"`
	QuantityPerUnit float64
	Unit            string
	Piece           string
}

func (CustomBOMLineDTO) TableName() string {
	return "custom_bom_lines"
}

func itemFromDomain(item *orderitem.OrderItem) OrderItemDTO {
	state := item.State()
	dto := OrderItemDTO{
		ID:               state.ID.Bytes(),
		OrderID:          state.OrderID.Bytes(),
		ProductID:        state.ProductID.Bytes(),
		Size:             state.Size,
		Quantity:         state.Quantity,
		BasePieces:       pgconv.Sections(state.BasePieces),
		AddOnPieces:      pgconv.Sections(state.AddOnPieces),
		RequiresDyeing:   state.RequiresDyeing,
		Status:           int(state.Status),
		ProductionHeadID: pgconv.OptionalID(state.ProductionHeadID),
		DyeingHolderID:   pgconv.OptionalID(state.DyeingHolderID),
		PacketPhase:      int(state.PacketPhase),
		Version:          state.Version,
		CreatedAt:        state.CreatedAt,
		UpdatedAt:        state.UpdatedAt,
	}
	dto.Sections = sectionsFromDomain(dto.ID, state.Sections)
	dto.Requirements = requirementsFromDomain(dto.ID, state.MaterialRequirements)

	dto.CustomBOM = make([]CustomBOMLineDTO, 0, len(state.CustomBOM))
	for i, line := range state.CustomBOM {
		dto.CustomBOM = append(dto.CustomBOM, CustomBOMLineDTO{
			OrderItemID:     dto.ID,
			Position:        i,
			InventoryItemID: line.InventoryItemID.Bytes(),
			QuantityPerUnit: line.QuantityPerUnit,
			Unit:            line.Unit,
			Piece:           line.Piece.String(),
		})
	}
	return dto
}

func sectionsFromDomain(itemID uuid.UUID, records map[kernel.Section]section.Record) []SectionDTO {
	out := make([]SectionDTO, 0, len(records))
	for _, s := range kernel.SortSections(slices.Collect(maps.Keys(records))) {
		rec := records[s]
		dto := SectionDTO{
			OrderItemID:           itemID,
			Section:               s.String(),
			Status:                int(rec.Status),
			UpdatedAt:             rec.UpdatedAt,
			Transitions:           rec.Transitions,
			DyeingAcceptedBy:      pgconv.OptionalID(rec.DyeingAcceptedBy),
			DyeingRejectionCode:   rec.DyeingRejectionCode,
			DyeingRejectionNotes:  rec.DyeingRejectionNotes,
			PacketRejectedAt:      rec.PacketRejectedAt,
			PacketRejectionReason: rec.PacketRejectionReason,
			ClientApprovedAt:      rec.ClientApprovedAt,
		}
		if rec.QA != nil {
			by, at := rec.QA.AddedBy.Bytes(), rec.QA.AddedAt
			dto.QAVideoURL = rec.QA.VideoURL
			dto.QAAddedBy = &by
			dto.QAAddedAt = &at
		}
		out = append(out, dto)
	}
	return out
}

func requirementsFromDomain(itemID uuid.UUID, reqs []orderitem.MaterialRequirement) []RequirementDTO {
	out := make([]RequirementDTO, 0, len(reqs))
	for i, r := range reqs {
		out = append(out, RequirementDTO{
			OrderItemID:     itemID,
			InventoryItemID: r.InventoryItemID.Bytes(),
			Position:        i,
			ItemName:        r.ItemName,
			Unit:            r.Unit,
			RackLocation:    r.RackLocation,
			Required:        r.Required,
			Available:       r.Available,
			Shortage:        r.Shortage,
			Availability:    string(r.Availability),
			Shares:          r.Shares,
		})
	}
	return out
}

func itemToDomain(dto OrderItemDTO) (*orderitem.OrderItem, error) {
	state := orderitem.State{
		Size:           dto.Size,
		Quantity:       dto.Quantity,
		BasePieces:     pgconv.FromSections(dto.BasePieces),
		AddOnPieces:    pgconv.FromSections(dto.AddOnPieces),
		RequiresDyeing: dto.RequiresDyeing,
		Status:         orderitem.Status(dto.Status),
		PacketPhase:    orderitem.PacketPhase(dto.PacketPhase),
		Version:        dto.Version,
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
	}

	var err error
	if state.ID, err = pgconv.ID(dto.ID); err != nil {
		return nil, err
	}
	if state.OrderID, err = pgconv.ID(dto.OrderID); err != nil {
		return nil, err
	}
	if state.ProductID, err = pgconv.ID(dto.ProductID); err != nil {
		return nil, err
	}
	if state.ProductionHeadID, err = pgconv.FromOptionalID(dto.ProductionHeadID); err != nil {
		return nil, err
	}
	if state.DyeingHolderID, err = pgconv.FromOptionalID(dto.DyeingHolderID); err != nil {
		return nil, err
	}
	if state.Sections, err = sectionsToDomain(dto.Sections); err != nil {
		return nil, err
	}
	if state.MaterialRequirements, err = requirementsToDomain(dto.Requirements); err != nil {
		return nil, err
	}

	state.CustomBOM = make([]bom.Item, 0, len(dto.CustomBOM))
	for _, line := range dto.CustomBOM {
		var invID kernel.UUID
		if invID, err = pgconv.ID(line.InventoryItemID); err != nil {
			return nil, err
		}
		state.CustomBOM = append(state.CustomBOM, bom.Item{
			InventoryItemID: invID,
			QuantityPerUnit: line.QuantityPerUnit,
			Unit:            line.Unit,
			Piece:           kernel.Section(line.Piece),
		})
	}

	return orderitem.RestoreOrderItem(state)
}

func sectionsToDomain(dtos []SectionDTO) (map[kernel.Section]section.Record, error) {
	out := make(map[kernel.Section]section.Record, len(dtos))
	for _, dto := range dtos {
		accepted, err := pgconv.FromOptionalID(dto.DyeingAcceptedBy)
		if err != nil {
			return nil, err
		}
		rec := section.Record{
			Status:                section.Status(dto.Status),
			UpdatedAt:             dto.UpdatedAt,
			Transitions:           dto.Transitions,
			DyeingAcceptedBy:      accepted,
			DyeingRejectionCode:   dto.DyeingRejectionCode,
			DyeingRejectionNotes:  dto.DyeingRejectionNotes,
			PacketRejectedAt:      dto.PacketRejectedAt,
			PacketRejectionReason: dto.PacketRejectionReason,
			ClientApprovedAt:      dto.ClientApprovedAt,
		}
		if dto.QAAddedBy != nil && dto.QAAddedAt != nil {
			var by kernel.UUID
			if by, err = pgconv.ID(*dto.QAAddedBy); err != nil {
				return nil, err
			}
			rec.QA = &section.QAData{VideoURL: dto.QAVideoURL, AddedBy: by, AddedAt: *dto.QAAddedAt}
		}
		if rec.Transitions == nil {
			rec.Transitions = make(map[section.Status]time.Time)
		}
		out[kernel.Section(dto.Section)] = rec
	}
	return out, nil
}

func requirementsToDomain(dtos []RequirementDTO) ([]orderitem.MaterialRequirement, error) {
	out := make([]orderitem.MaterialRequirement, 0, len(dtos))
	for _, dto := range dtos {
		invID, err := pgconv.ID(dto.InventoryItemID)
		if err != nil {
			return nil, err
		}
		out = append(out, orderitem.MaterialRequirement{
			InventoryItemID: invID,
			ItemName:        dto.ItemName,
			Unit:            dto.Unit,
			RackLocation:    dto.RackLocation,
			Required:        dto.Required,
			Available:       dto.Available,
			Shortage:        dto.Shortage,
			Availability:    orderitem.Availability(dto.Availability),
			Shares:          dto.Shares,
		})
	}
	return out, nil
}
