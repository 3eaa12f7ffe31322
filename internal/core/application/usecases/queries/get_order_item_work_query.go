package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packet"
	"fulfillment/internal/core/domain/model/production"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderItemWorkQueryIsNotConstructed = errors.New(
	"GetOrderItemWorkQuery must be created via NewGetOrderItemWorkQuery constructor",
)

// GetOrderItemWorkQuery reads the packet and production tasks of an order
// item, which is where workers find the line and task ids they act on.
type GetOrderItemWorkQuery struct {
	orderItemID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderItemWorkQuery(orderItemID kernel.UUID) (GetOrderItemWorkQuery, error) {
	if err := orderItemID.Validate(); err != nil {
		return GetOrderItemWorkQuery{}, err
	}
	return GetOrderItemWorkQuery{orderItemID: orderItemID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderItemWorkQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderItemWorkQueryIsNotConstructed)
}

func (q GetOrderItemWorkQuery) OrderItemID() kernel.UUID { return q.orderItemID }

type PacketLineResponse struct {
	ID              kernel.UUID
	InventoryItemID kernel.UUID
	ItemName        string
	Section         kernel.Section
	Required        float64
	Picked          float64
	Unit            string
	RackLocation    string
	IsPicked        bool
	Round           int
}

type PacketResponse struct {
	ID       kernel.UUID
	Status   string
	Round    int
	Assignee *kernel.UUID
	Lines    []PacketLineResponse
}

type TaskResponse struct {
	ID       kernel.UUID
	Section  kernel.Section
	Sequence int
	Name     string
	WorkerID kernel.UUID
	Status   string
}

// GetOrderItemWorkQueryResponse has a nil Packet until one is created.
type GetOrderItemWorkQueryResponse struct {
	OrderItemID kernel.UUID
	Packet      *PacketResponse
	Tasks       []TaskResponse
}

// OrderItemWorkFrom builds the view from loaded aggregates. p may be nil.
func OrderItemWorkFrom(orderItemID kernel.UUID, p *packet.Packet, tasks []*production.Task) GetOrderItemWorkQueryResponse {
	view := GetOrderItemWorkQueryResponse{
		OrderItemID: orderItemID,
		Tasks:       make([]TaskResponse, 0, len(tasks)),
	}

	if p != nil {
		lines := p.Lines()
		pr := &PacketResponse{
			ID:       p.ID(),
			Status:   p.Status().String(),
			Round:    p.Round(),
			Assignee: p.Assignee(),
			Lines:    make([]PacketLineResponse, 0, len(lines)),
		}
		for _, l := range lines {
			pr.Lines = append(pr.Lines, PacketLineResponse(l))
		}
		view.Packet = pr
	}

	for _, t := range tasks {
		view.Tasks = append(view.Tasks, TaskResponse{
			ID:       t.ID(),
			Section:  t.Section(),
			Sequence: t.Sequence(),
			Name:     t.Name(),
			WorkerID: t.WorkerID(),
			Status:   t.Status().String(),
		})
	}
	return view
}
