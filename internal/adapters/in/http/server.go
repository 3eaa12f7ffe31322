// Package http exposes every fulfillment command and query over echo.
package http

import (
	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateInventoryItem  commands.CreateInventoryItemCommandHandler
	ReceiveStock         commands.ReceiveStockCommandHandler
	CreateBOM            commands.CreateBOMCommandHandler
	ActivateBOM          commands.ActivateBOMCommandHandler
	CreateProductionHead commands.CreateProductionHeadCommandHandler

	CreateOrder    commands.CreateOrderCommandHandler
	RecordPayment  commands.RecordPaymentCommandHandler
	DispatchOrder  commands.DispatchOrderCommandHandler
	CompleteOrder  commands.CompleteOrderCommandHandler
	RefreshUrgency commands.RefreshUrgencyCommandHandler

	RunInventoryCheck     commands.RunInventoryCheckCommandHandler
	CreatePacket          commands.CreatePacketCommandHandler
	AssignPacket          commands.AssignPacketCommandHandler
	StartPacket           commands.StartPacketCommandHandler
	PickPacketItem        commands.PickPacketItemCommandHandler
	CompletePacket        commands.CompletePacketCommandHandler
	ApprovePacket         commands.ApprovePacketCommandHandler
	ApprovePacketSections commands.ApprovePacketSectionsCommandHandler
	RejectPacket          commands.RejectPacketCommandHandler

	Dyeing       commands.DyeingCommandHandler
	RejectDyeing commands.RejectDyeingCommandHandler

	AssignProductionHead     commands.AssignProductionHeadCommandHandler
	AssignNextProductionHead commands.AssignNextProductionHeadCommandHandler
	CreateProductionTasks    commands.CreateProductionTasksCommandHandler
	StartTask                commands.StartTaskCommandHandler
	CompleteTask             commands.CompleteTaskCommandHandler

	SendToQA              commands.SendToQACommandHandler
	AddQAEvidence         commands.AddQAEvidenceCommandHandler
	RequestClientApproval commands.RequestClientApprovalCommandHandler
	RecordClientApproval  commands.RecordClientApprovalCommandHandler

	GetOrderItemStatus     queries.GetOrderItemStatusQueryHandler
	GetOrderItemWork       queries.GetOrderItemWorkQueryHandler
	ListProcurementDemands queries.ListProcurementDemandsQueryHandler
	GetOrderTimeline       queries.GetOrderTimelineQueryHandler
}

// Server coordinates between HTTP requests and application use cases.
// Mutating requests name the acting user in the X-Actor-ID header.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// Register mounts the API routes on g.
func (s *Server) Register(g *echo.Group) {
	g.POST("/inventory-items", s.CreateInventoryItem)
	g.POST("/inventory-items/:id/receipts", s.ReceiveStock)
	g.POST("/boms", s.CreateBOM)
	g.POST("/boms/:id/activate", s.ActivateBOM)
	g.POST("/production-heads", s.CreateProductionHead)
	g.POST("/production-heads/assign-next", s.AssignNextProductionHead)

	g.POST("/orders", s.CreateOrder)
	g.POST("/orders/urgency", s.RefreshUrgency)
	g.POST("/orders/:id/payments", s.RecordPayment)
	g.POST("/orders/:id/dispatch", s.DispatchOrder)
	g.POST("/orders/:id/complete", s.CompleteOrder)
	g.GET("/orders/:id/timeline", s.GetOrderTimeline)

	g.GET("/order-items/:id", s.GetOrderItemStatus)
	g.GET("/order-items/:id/work", s.GetOrderItemWork)
	g.POST("/order-items/:id/inventory-check", s.RunInventoryCheck)
	g.POST("/order-items/:id/packet", s.CreatePacket)
	g.POST("/order-items/:id/packet/assign", s.AssignPacket)
	g.POST("/order-items/:id/packet/start", s.StartPacket)
	g.POST("/order-items/:id/packet/lines/:lineId/pick", s.PickPacketLine)
	g.POST("/order-items/:id/packet/complete", s.CompletePacket)
	g.POST("/order-items/:id/packet/approve", s.ApprovePacket)
	g.POST("/order-items/:id/packet/approve-sections", s.ApprovePacketSections)
	g.POST("/order-items/:id/packet/reject", s.RejectPacket)
	g.POST("/order-items/:id/dyeing/reject", s.RejectDyeing)
	g.POST("/order-items/:id/dyeing/:step", s.Dyeing)
	g.POST("/order-items/:id/production-head", s.AssignProductionHead)
	g.POST("/order-items/:id/tasks", s.CreateProductionTasks)
	g.POST("/order-items/:id/qa", s.SendToQA)
	g.POST("/order-items/:id/qa/evidence", s.AddQAEvidence)
	g.POST("/order-items/:id/client-approval/request", s.RequestClientApproval)
	g.POST("/order-items/:id/client-approval", s.RecordClientApproval)

	g.POST("/tasks/:id/start", s.StartTask)
	g.POST("/tasks/:id/complete", s.CompleteTask)

	g.GET("/procurement-demands", s.ListProcurementDemands)
}
