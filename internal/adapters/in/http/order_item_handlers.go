package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
)

// GetOrderItemStatus handles GET /order-items/:id.
func (s *Server) GetOrderItemStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderItemStatusQuery(id)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrderItemStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderItemStatusFrom(view))
}

// GetOrderItemWork handles GET /order-items/:id/work.
func (s *Server) GetOrderItemWork(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderItemWorkQuery(id)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrderItemWork.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderItemWorkFrom(view))
}

// RunInventoryCheck handles POST /order-items/:id/inventory-check.
func (s *Server) RunInventoryCheck(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRunInventoryCheckCommand(id, actor)
	if err != nil {
		return err
	}
	if err = s.h.RunInventoryCheck.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.itemStatus(c, id)
}

// CreatePacket handles POST /order-items/:id/packet.
func (s *Server) CreatePacket(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreatePacketCommand(id, actor)
	if err != nil {
		return err
	}
	if err = s.h.CreatePacket.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// AssignPacket handles POST /order-items/:id/packet/assign.
func (s *Server) AssignPacket(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}
	var req AssignPacketRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	assignee, err := toID(req.AssigneeID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignPacketCommand(id, assignee, actor)
	if err != nil {
		return err
	}
	if err = s.h.AssignPacket.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// StartPacket handles POST /order-items/:id/packet/start.
func (s *Server) StartPacket(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewStartPacketCommand(id, actor)
	if err != nil {
		return err
	}
	if err = s.h.StartPacket.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// PickPacketLine handles POST /order-items/:id/packet/lines/:lineId/pick.
func (s *Server) PickPacketLine(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}
	lineID, err := pathID(c, "lineId")
	if err != nil {
		return err
	}
	var req PickLineRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewPickPacketItemCommand(id, lineID, req.Quantity, actor)
	if err != nil {
		return err
	}
	if err = s.h.PickPacketItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CompletePacket handles POST /order-items/:id/packet/complete. Unpicked
// lines are listed in a 422 response.
func (s *Server) CompletePacket(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCompletePacketCommand(id, actor)
	if err != nil {
		return err
	}
	if err = s.h.CompletePacket.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ApprovePacket handles POST /order-items/:id/packet/approve.
func (s *Server) ApprovePacket(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}
	var req ApprovePacketRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewApprovePacketCommand(id, req.ReadyStock, actor)
	if err != nil {
		return err
	}
	if err = s.h.ApprovePacket.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.itemStatus(c, id)
}

// ApprovePacketSections handles POST /order-items/:id/packet/approve-sections.
func (s *Server) ApprovePacketSections(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}
	var req ApproveSectionsRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	sections, err := kernel.ParseSections(req.Sections)
	if err != nil {
		return err
	}

	cmd, err := commands.NewApprovePacketSectionsCommand(id, sections, req.ReadyStock, actor)
	if err != nil {
		return err
	}
	if err = s.h.ApprovePacketSections.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.itemStatus(c, id)
}

// RejectPacket handles POST /order-items/:id/packet/reject.
func (s *Server) RejectPacket(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}
	var req RejectPacketRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRejectPacketCommand(id, req.ReasonCode, req.Reason, actor)
	if err != nil {
		return err
	}
	if err = s.h.RejectPacket.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.itemStatus(c, id)
}

// Dyeing handles POST /order-items/:id/dyeing/:step where step is accept,
// start or complete.
func (s *Server) Dyeing(c echo.Context) error {
	id, worker, err := targetAndActor(c)
	if err != nil {
		return err
	}
	step, err := commands.ParseDyeingStep(c.Param("step"))
	if err != nil {
		return err
	}
	sections, err := s.bindSections(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDyeingCommand(id, step, sections, worker)
	if err != nil {
		return err
	}
	if err = s.h.Dyeing.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.itemStatus(c, id)
}

// RejectDyeing handles POST /order-items/:id/dyeing/reject.
func (s *Server) RejectDyeing(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}
	var req RejectDyeingRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	sections, err := kernel.ParseSections(req.Sections)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRejectDyeingCommand(id, sections, req.ReasonCode, req.Notes, actor)
	if err != nil {
		return err
	}
	if err = s.h.RejectDyeing.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.itemStatus(c, id)
}

// AssignProductionHead handles POST /order-items/:id/production-head.
func (s *Server) AssignProductionHead(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignProductionHeadCommand(id, actor)
	if err != nil {
		return err
	}
	if err = s.h.AssignProductionHead.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.itemStatus(c, id)
}

// CreateProductionTasks handles POST /order-items/:id/tasks.
func (s *Server) CreateProductionTasks(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}
	var req CreateTasksRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	section, err := kernel.ParseSection(req.Section)
	if err != nil {
		return err
	}
	steps, err := req.steps()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateProductionTasksCommand(id, section, steps, actor)
	if err != nil {
		return err
	}
	if err = s.h.CreateProductionTasks.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// SendToQA handles POST /order-items/:id/qa.
func (s *Server) SendToQA(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}
	sections, err := s.bindSections(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSendToQACommand(id, sections, actor)
	if err != nil {
		return err
	}
	if err = s.h.SendToQA.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.itemStatus(c, id)
}

// AddQAEvidence handles POST /order-items/:id/qa/evidence.
func (s *Server) AddQAEvidence(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}
	var req QAEvidenceRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	section, err := kernel.ParseSection(req.Section)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAddQAEvidenceCommand(id, section, req.VideoURL, actor)
	if err != nil {
		return err
	}
	if err = s.h.AddQAEvidence.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RequestClientApproval handles POST /order-items/:id/client-approval/request.
func (s *Server) RequestClientApproval(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}
	sections, err := s.bindSections(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRequestClientApprovalCommand(id, sections, actor)
	if err != nil {
		return err
	}
	if err = s.h.RequestClientApproval.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.itemStatus(c, id)
}

// RecordClientApproval handles POST /order-items/:id/client-approval.
func (s *Server) RecordClientApproval(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}
	sections, err := s.bindSections(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRecordClientApprovalCommand(id, sections, actor)
	if err != nil {
		return err
	}
	if err = s.h.RecordClientApproval.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.itemStatus(c, id)
}

// StartTask handles POST /tasks/:id/start. The actor must be the task's worker.
func (s *Server) StartTask(c echo.Context) error {
	id, worker, err := targetAndActor(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewStartTaskCommand(id, worker)
	if err != nil {
		return err
	}
	if err = s.h.StartTask.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CompleteTask handles POST /tasks/:id/complete.
func (s *Server) CompleteTask(c echo.Context) error {
	id, worker, err := targetAndActor(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCompleteTaskCommand(id, worker)
	if err != nil {
		return err
	}
	if err = s.h.CompleteTask.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) bindSections(c echo.Context) ([]kernel.Section, error) {
	var req SectionsRequest
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return kernel.ParseSections(req.Sections)
}

// itemStatus answers a transition with the item's new status view.
func (s *Server) itemStatus(c echo.Context, id kernel.UUID) error {
	query, err := queries.NewGetOrderItemStatusQuery(id)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrderItemStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderItemStatusFrom(view))
}
