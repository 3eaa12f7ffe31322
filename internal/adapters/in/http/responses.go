package http

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
)

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type CreatedOrderResponse struct {
	ID      uuid.UUID   `json:"id"`
	ItemIDs []uuid.UUID `json:"itemIds"`
}

type SectionStatus struct {
	Section   string    `json:"section"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderItemStatus struct {
	ID               uuid.UUID       `json:"id"`
	OrderID          uuid.UUID       `json:"orderId"`
	Status           string          `json:"status"`
	PacketPhase      string          `json:"packetPhase"`
	RequiresDyeing   bool            `json:"requiresDyeing"`
	ProductionHeadID *uuid.UUID      `json:"productionHeadId,omitempty"`
	Version          int             `json:"version"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	Sections         []SectionStatus `json:"sections"`
}

type PacketLine struct {
	ID              uuid.UUID `json:"id"`
	InventoryItemID uuid.UUID `json:"inventoryItemId"`
	ItemName        string    `json:"itemName"`
	Section         string    `json:"section"`
	Required        float64   `json:"required"`
	Picked          float64   `json:"picked"`
	Unit            string    `json:"unit"`
	RackLocation    string    `json:"rackLocation"`
	IsPicked        bool      `json:"isPicked"`
	Round           int       `json:"round"`
}

type Packet struct {
	ID       uuid.UUID    `json:"id"`
	Status   string       `json:"status"`
	Round    int          `json:"round"`
	Assignee *uuid.UUID   `json:"assigneeId,omitempty"`
	Lines    []PacketLine `json:"lines"`
}

type Task struct {
	ID       uuid.UUID `json:"id"`
	Section  string    `json:"section"`
	Sequence int       `json:"sequence"`
	Name     string    `json:"name"`
	WorkerID uuid.UUID `json:"workerId"`
	Status   string    `json:"status"`
}

type OrderItemWork struct {
	OrderItemID uuid.UUID `json:"orderItemId"`
	Packet      *Packet   `json:"packet,omitempty"`
	Tasks       []Task    `json:"tasks"`
}

type ProcurementDemand struct {
	OrderItemID     uuid.UUID `json:"orderItemId"`
	OrderID         uuid.UUID `json:"orderId"`
	InventoryItemID uuid.UUID `json:"inventoryItemId"`
	ItemName        string    `json:"itemName"`
	Unit            string    `json:"unit"`
	Required        float64   `json:"required"`
	Available       float64   `json:"available"`
	Shortage        float64   `json:"shortage"`
	CreatedAt       time.Time `json:"createdAt"`
}

type TimelineEntry struct {
	ID          uuid.UUID  `json:"id"`
	OrderItemID *uuid.UUID `json:"orderItemId,omitempty"`
	Action      string     `json:"action"`
	Actor       string     `json:"actor"`
	Details     string     `json:"details,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func orderItemStatusFrom(v queries.GetOrderItemStatusQueryResponse) OrderItemStatus {
	out := OrderItemStatus{
		ID:               v.ID.Bytes(),
		OrderID:          v.OrderID.Bytes(),
		Status:           v.Status,
		PacketPhase:      v.PacketPhase,
		RequiresDyeing:   v.RequiresDyeing,
		ProductionHeadID: optionalID(v.ProductionHeadID),
		Version:          v.Version,
		UpdatedAt:        v.UpdatedAt,
		Sections:         make([]SectionStatus, 0, len(v.Sections)),
	}
	for _, s := range v.Sections {
		out.Sections = append(out.Sections, SectionStatus{Section: s.Section.String(), Status: s.Status, UpdatedAt: s.UpdatedAt})
	}
	return out
}

func orderItemWorkFrom(v queries.GetOrderItemWorkQueryResponse) OrderItemWork {
	out := OrderItemWork{
		OrderItemID: v.OrderItemID.Bytes(),
		Tasks:       make([]Task, 0, len(v.Tasks)),
	}
	if v.Packet != nil {
		p := &Packet{
			ID:       v.Packet.ID.Bytes(),
			Status:   v.Packet.Status,
			Round:    v.Packet.Round,
			Assignee: optionalID(v.Packet.Assignee),
			Lines:    make([]PacketLine, 0, len(v.Packet.Lines)),
		}
		for _, l := range v.Packet.Lines {
			p.Lines = append(p.Lines, PacketLine{
				ID:              l.ID.Bytes(),
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
		out.Packet = p
	}
	for _, t := range v.Tasks {
		out.Tasks = append(out.Tasks, Task{
			ID:       t.ID.Bytes(),
			Section:  t.Section.String(),
			Sequence: t.Sequence,
			Name:     t.Name,
			WorkerID: t.WorkerID.Bytes(),
			Status:   t.Status,
		})
	}
	return out
}

func procurementDemandsFrom(rows []queries.ProcurementDemandResponse) []ProcurementDemand {
	out := make([]ProcurementDemand, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProcurementDemand{
			OrderItemID:     r.OrderItemID.Bytes(),
			OrderID:         r.OrderID.Bytes(),
			InventoryItemID: r.InventoryItemID.Bytes(),
			ItemName:        r.ItemName,
			Unit:            r.Unit,
			Required:        r.Required,
			Available:       r.Available,
			Shortage:        r.Shortage,
			CreatedAt:       r.CreatedAt,
		})
	}
	return out
}

func timelineFrom(entries []queries.TimelineEntryResponse) []TimelineEntry {
	out := make([]TimelineEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, TimelineEntry{
			ID:          e.ID.Bytes(),
			OrderItemID: optionalID(e.OrderItemID),
			Action:      e.Action,
			Actor:       e.Actor,
			Details:     e.Details,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}
