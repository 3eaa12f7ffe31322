package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
)

// CreateInventoryItem handles POST /inventory-items.
func (s *Server) CreateInventoryItem(c echo.Context) error {
	var req CreateInventoryItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateInventoryItemCommand(id, req.Name, req.Unit, req.RackLocation, req.OnHand)
	if err != nil {
		return err
	}
	if err = s.h.CreateInventoryItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.Bytes()})
}

// ReceiveStock handles POST /inventory-items/:id/receipts.
func (s *Server) ReceiveStock(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ReceiveStockRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewReceiveStockCommand(id, req.Quantity)
	if err != nil {
		return err
	}
	if err = s.h.ReceiveStock.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateBOM handles POST /boms. The new version starts inactive.
func (s *Server) CreateBOM(c echo.Context) error {
	var req CreateBOMRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	productID, err := toID(req.ProductID)
	if err != nil {
		return err
	}
	items, err := bomItems(req.Items)
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateBOMCommand(id, productID, req.Size, items)
	if err != nil {
		return err
	}
	if err = s.h.CreateBOM.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.Bytes()})
}

// ActivateBOM handles POST /boms/:id/activate.
func (s *Server) ActivateBOM(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewActivateBOMCommand(id)
	if err != nil {
		return err
	}
	if err = s.h.ActivateBOM.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateProductionHead handles POST /production-heads.
func (s *Server) CreateProductionHead(c echo.Context) error {
	var req CreateProductionHeadRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateProductionHeadCommand(id, req.Name, req.SortOrder)
	if err != nil {
		return err
	}
	if err = s.h.CreateProductionHead.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.Bytes()})
}

// AssignNextProductionHead handles POST /production-heads/assign-next. It
// answers 404 when no item is waiting for a head.
func (s *Server) AssignNextProductionHead(c echo.Context) error {
	cmd, err := commands.NewAssignNextProductionHeadCommand()
	if err != nil {
		return err
	}
	if err = s.h.AssignNextProductionHead.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListProcurementDemands handles GET /procurement-demands.
func (s *Server) ListProcurementDemands(c echo.Context) error {
	rows, err := s.h.ListProcurementDemands.Handle(c.Request().Context(), queries.NewListProcurementDemandsQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, procurementDemandsFrom(rows))
}
