package http

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/bom"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/production"
)

type CreateInventoryItemRequest struct {
	Name         string  `json:"name" validate:"required"`
	Unit         string  `json:"unit" validate:"required"`
	RackLocation string  `json:"rackLocation"`
	OnHand       float64 `json:"onHand" validate:"gte=0"`
}

type ReceiveStockRequest struct {
	Quantity float64 `json:"quantity" validate:"gt=0"`
}

type BOMLineRequest struct {
	InventoryItemID uuid.UUID `json:"inventoryItemId" validate:"required"`
	QuantityPerUnit float64   `json:"quantityPerUnit" validate:"gt=0"`
	Unit            string    `json:"unit" validate:"required"`
	Piece           string    `json:"piece" validate:"required,section"`
}

type CreateBOMRequest struct {
	ProductID uuid.UUID        `json:"productId" validate:"required"`
	Size      string           `json:"size" validate:"required"`
	Items     []BOMLineRequest `json:"items" validate:"required,min=1,dive"`
}

type CreateProductionHeadRequest struct {
	Name      string `json:"name" validate:"required"`
	SortOrder int    `json:"sortOrder"`
}

type CustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address"`
}

type OrderItemRequest struct {
	ProductID      uuid.UUID        `json:"productId" validate:"required"`
	Size           string           `json:"size" validate:"required"`
	Quantity       int              `json:"quantity" validate:"min=1"`
	BasePieces     []string         `json:"basePieces" validate:"required,min=1,dive,section"`
	AddOnPieces    []string         `json:"addOnPieces" validate:"dive,section"`
	RequiresDyeing bool             `json:"requiresDyeing"`
	CustomBOM      []BOMLineRequest `json:"customBom" validate:"dive"`
}

type CreateOrderRequest struct {
	Customer    CustomerRequest    `json:"customer"`
	TotalAmount int64              `json:"totalAmount" validate:"gte=0"`
	FWDDate     *time.Time         `json:"fwdDate"`
	Items       []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type RecordPaymentRequest struct {
	Amount     int64      `json:"amount" validate:"gt=0"`
	Method     string     `json:"method" validate:"required"`
	Reference  string     `json:"reference"`
	ReceivedAt *time.Time `json:"receivedAt"`
}

type DispatchOrderRequest struct {
	Courier        string     `json:"courier" validate:"required"`
	TrackingNumber string     `json:"trackingNumber" validate:"required"`
	DispatchedAt   *time.Time `json:"dispatchedAt"`
}

type RefreshUrgencyRequest struct {
	WindowDays int `json:"windowDays" validate:"min=1"`
}

type AssignPacketRequest struct {
	AssigneeID uuid.UUID `json:"assigneeId" validate:"required"`
}

type PickLineRequest struct {
	Quantity float64 `json:"quantity" validate:"gt=0"`
}

type ApprovePacketRequest struct {
	ReadyStock bool `json:"readyStock"`
}

type ApproveSectionsRequest struct {
	Sections   []string `json:"sections" validate:"required,min=1,dive,section"`
	ReadyStock bool     `json:"readyStock"`
}

type RejectPacketRequest struct {
	ReasonCode string `json:"reasonCode" validate:"required"`
	Reason     string `json:"reason"`
}

// SectionsRequest is the body of every operation scoped to a set of sections.
type SectionsRequest struct {
	Sections []string `json:"sections" validate:"required,min=1,dive,section"`
}

type RejectDyeingRequest struct {
	Sections   []string `json:"sections" validate:"required,min=1,dive,section"`
	ReasonCode string   `json:"reasonCode" validate:"required"`
	Notes      string   `json:"notes"`
}

type TaskStepRequest struct {
	Name     string    `json:"name" validate:"required"`
	WorkerID uuid.UUID `json:"workerId" validate:"required"`
}

type CreateTasksRequest struct {
	Section string            `json:"section" validate:"required,section"`
	Steps   []TaskStepRequest `json:"steps" validate:"required,min=1,dive"`
}

type QAEvidenceRequest struct {
	Section  string `json:"section" validate:"required,section"`
	VideoURL string `json:"videoUrl" validate:"required,url"`
}

func bomItems(lines []BOMLineRequest) ([]bom.Item, error) {
	items := make([]bom.Item, 0, len(lines))
	for _, l := range lines {
		stockID, err := toID(l.InventoryItemID)
		if err != nil {
			return nil, err
		}
		piece, err := kernel.ParseSection(l.Piece)
		if err != nil {
			return nil, err
		}
		item, err := bom.NewItem(stockID, l.QuantityPerUnit, l.Unit, piece)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r OrderItemRequest) spec() (orderitem.Spec, error) {
	productID, err := toID(r.ProductID)
	if err != nil {
		return orderitem.Spec{}, err
	}
	base, err := kernel.ParseSections(r.BasePieces)
	if err != nil {
		return orderitem.Spec{}, err
	}
	addOns, err := kernel.ParseSections(r.AddOnPieces)
	if err != nil {
		return orderitem.Spec{}, err
	}
	custom, err := bomItems(r.CustomBOM)
	if err != nil {
		return orderitem.Spec{}, err
	}

	return orderitem.Spec{
		ProductID:      productID,
		Size:           r.Size,
		Quantity:       r.Quantity,
		BasePieces:     base,
		AddOnPieces:    addOns,
		RequiresDyeing: r.RequiresDyeing,
		CustomBOM:      custom,
	}, nil
}

func (r CreateTasksRequest) steps() ([]production.Step, error) {
	steps := make([]production.Step, 0, len(r.Steps))
	for _, s := range r.Steps {
		worker, err := toID(s.WorkerID)
		if err != nil {
			return nil, err
		}
		steps = append(steps, production.Step{Name: s.Name, WorkerID: worker})
	}
	return steps, nil
}

func orNow(t *time.Time, now time.Time) time.Time {
	if t == nil {
		return now
	}
	return *t
}
