package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

const day = 24 * time.Hour

// CreateOrder handles POST /orders. Every item starts in INVENTORY_CHECK.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	var req CreateOrderRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	items := make([]commands.NewItem, 0, len(req.Items))
	created := CreatedOrderResponse{ItemIDs: make([]uuid.UUID, 0, len(req.Items))}
	for _, r := range req.Items {
		spec, err := r.spec()
		if err != nil {
			return err
		}
		id := kernel.NewUUID()
		items = append(items, commands.NewItem{ID: id, Spec: spec})
		created.ItemIDs = append(created.ItemIDs, id.Bytes())
	}

	orderID := kernel.NewUUID()
	customer := order.Customer{Name: req.Customer.Name, Phone: req.Customer.Phone, Address: req.Customer.Address}
	cmd, err := commands.NewCreateOrderCommand(orderID, customer, req.TotalAmount, req.FWDDate, items, actor)
	if err != nil {
		return err
	}
	if err = s.h.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	created.ID = orderID.Bytes()
	return c.JSON(http.StatusCreated, created)
}

// RecordPayment handles POST /orders/:id/payments.
func (s *Server) RecordPayment(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}
	var req RecordPaymentRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	receivedAt := orNow(req.ReceivedAt, time.Now().UTC())
	cmd, err := commands.NewRecordPaymentCommand(id, req.Amount, req.Method, req.Reference, receivedAt, actor)
	if err != nil {
		return err
	}
	if err = s.h.RecordPayment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DispatchOrder handles POST /orders/:id/dispatch.
func (s *Server) DispatchOrder(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}
	var req DispatchOrderRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	dispatchedAt := orNow(req.DispatchedAt, time.Now().UTC())
	cmd, err := commands.NewDispatchOrderCommand(id, req.Courier, req.TrackingNumber, dispatchedAt, actor)
	if err != nil {
		return err
	}
	if err = s.h.DispatchOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /orders/:id/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	id, actor, err := targetAndActor(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCompleteOrderCommand(id, actor)
	if err != nil {
		return err
	}
	if err = s.h.CompleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RefreshUrgency handles POST /orders/urgency.
func (s *Server) RefreshUrgency(c echo.Context) error {
	var req RefreshUrgencyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRefreshUrgencyCommand(time.Duration(req.WindowDays) * day)
	if err != nil {
		return err
	}
	if err = s.h.RefreshUrgency.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetOrderTimeline handles GET /orders/:id/timeline.
func (s *Server) GetOrderTimeline(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderTimelineQuery(id)
	if err != nil {
		return err
	}
	entries, err := s.h.GetOrderTimeline.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, timelineFrom(entries))
}

func targetAndActor(c echo.Context) (kernel.UUID, kernel.UUID, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	actor, err := actorID(c)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return id, actor, nil
}
