package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
)

type ServerSuite struct {
	suite.Suite

	router  *echo.Echo
	metrics *Metrics

	supervisor uuid.UUID
	picker     uuid.UUID
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.metrics = NewMetrics("fulfillment")

	doc, err := LoadOpenAPI(s.T().Context())
	s.Require().NoError(err)

	store := memory.NewStore()
	server := NewServer(memoryHandlers(store, s.metrics.ObservePublisher(nil), logger))
	s.router = NewRouter(server, s.metrics, doc, logger)

	s.supervisor = uuid.New()
	s.picker = uuid.New()
}

func memoryHandlers(store *memory.Store, publisher ports.TimelinePublisher, logger *slog.Logger) Handlers {
	factory := memory.NewUnitOfWorkFactory(store, publisher, logger)
	uows := commands.UoWFactoryFunc(func() commands.UoW { return factory.Create() })
	orders := commands.OrderUoWFactoryFunc(func() commands.OrderUoW { return factory.Create() })
	catalog := commands.CatalogUoWFactoryFunc(func() commands.CatalogUoW { return factory.Create() })
	reader := memory.NewReader(store)

	return Handlers{
		CreateInventoryItem:      commands.NewCreateInventoryItemCommandHandler(catalog),
		ReceiveStock:             commands.NewReceiveStockCommandHandler(catalog),
		CreateBOM:                commands.NewCreateBOMCommandHandler(catalog),
		ActivateBOM:              commands.NewActivateBOMCommandHandler(catalog),
		CreateProductionHead:     commands.NewCreateProductionHeadCommandHandler(catalog),
		CreateOrder:              commands.NewCreateOrderCommandHandler(orders),
		RecordPayment:            commands.NewRecordPaymentCommandHandler(orders),
		DispatchOrder:            commands.NewDispatchOrderCommandHandler(orders),
		CompleteOrder:            commands.NewCompleteOrderCommandHandler(orders),
		RefreshUrgency:           commands.NewRefreshUrgencyCommandHandler(orders),
		RunInventoryCheck:        commands.NewRunInventoryCheckCommandHandler(uows),
		CreatePacket:             commands.NewCreatePacketCommandHandler(uows),
		AssignPacket:             commands.NewAssignPacketCommandHandler(uows),
		StartPacket:              commands.NewStartPacketCommandHandler(uows),
		PickPacketItem:           commands.NewPickPacketItemCommandHandler(uows),
		CompletePacket:           commands.NewCompletePacketCommandHandler(uows),
		ApprovePacket:            commands.NewApprovePacketCommandHandler(uows),
		ApprovePacketSections:    commands.NewApprovePacketSectionsCommandHandler(uows),
		RejectPacket:             commands.NewRejectPacketCommandHandler(uows),
		Dyeing:                   commands.NewDyeingCommandHandler(orders),
		RejectDyeing:             commands.NewRejectDyeingCommandHandler(uows),
		AssignProductionHead:     commands.NewAssignProductionHeadCommandHandler(uows),
		AssignNextProductionHead: commands.NewAssignNextProductionHeadCommandHandler(uows),
		CreateProductionTasks:    commands.NewCreateProductionTasksCommandHandler(uows),
		StartTask:                commands.NewStartTaskCommandHandler(uows),
		CompleteTask:             commands.NewCompleteTaskCommandHandler(uows),
		SendToQA:                 commands.NewSendToQACommandHandler(orders),
		AddQAEvidence:            commands.NewAddQAEvidenceCommandHandler(orders),
		RequestClientApproval:    commands.NewRequestClientApprovalCommandHandler(orders),
		RecordClientApproval:     commands.NewRecordClientApprovalCommandHandler(orders),
		GetOrderItemStatus:       queries.NewGetOrderItemStatusQueryHandler(reader),
		GetOrderItemWork:         queries.NewGetOrderItemWorkQueryHandler(reader),
		ListProcurementDemands:   queries.NewListProcurementDemandsQueryHandler(reader),
		GetOrderTimeline:         queries.NewGetOrderTimelineQueryHandler(reader),
	}
}

func (s *ServerSuite) do(method, path string, actor *uuid.UUID, body any) *httptest.ResponseRecorder {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		payload = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, payload)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if actor != nil {
		req.Header.Set(actorHeader, actor.String())
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ServerSuite) decode(rec *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

func (s *ServerSuite) expect(rec *httptest.ResponseRecorder, code int) {
	s.Require().Equal(code, rec.Code, rec.Body.String())
}

// catalog creates one stock item, a BOM for size M that uses it for the
// shirt and activates the BOM.
func (s *ServerSuite) catalog(onHand float64) (product, stock uuid.UUID) {
	rec := s.do(http.MethodPost, "/api/v1/inventory-items", nil, CreateInventoryItemRequest{
		Name: "Cotton lawn", Unit: "m", RackLocation: "R1-A", OnHand: onHand,
	})
	s.expect(rec, http.StatusCreated)
	var created CreatedResponse
	s.decode(rec, &created)
	stock = created.ID

	product = uuid.New()
	rec = s.do(http.MethodPost, "/api/v1/boms", nil, CreateBOMRequest{
		ProductID: product,
		Size:      "M",
		Items:     []BOMLineRequest{{InventoryItemID: stock, QuantityPerUnit: 2.5, Unit: "m", Piece: "shirt"}},
	})
	s.expect(rec, http.StatusCreated)
	s.decode(rec, &created)

	s.expect(s.do(http.MethodPost, "/api/v1/boms/"+created.ID.String()+"/activate", nil, nil), http.StatusNoContent)
	return product, stock
}

func (s *ServerSuite) createOrder(product uuid.UUID, requiresDyeing bool) CreatedOrderResponse {
	rec := s.do(http.MethodPost, "/api/v1/orders", &s.supervisor, CreateOrderRequest{
		Customer:    CustomerRequest{Name: "Ayesha", Phone: "+92-300-0000000"},
		TotalAmount: 25_000,
		Items: []OrderItemRequest{{
			ProductID:      product,
			Size:           "m",
			Quantity:       1,
			BasePieces:     []string{"Shirt"},
			RequiresDyeing: requiresDyeing,
		}},
	})
	s.expect(rec, http.StatusCreated)

	var created CreatedOrderResponse
	s.decode(rec, &created)
	s.Require().Len(created.ItemIDs, 1)
	return created
}

func (s *ServerSuite) work(itemID uuid.UUID) OrderItemWork {
	rec := s.do(http.MethodGet, "/api/v1/order-items/"+itemID.String()+"/work", nil, nil)
	s.expect(rec, http.StatusOK)
	var w OrderItemWork
	s.decode(rec, &w)
	return w
}

func (s *ServerSuite) TestPacketFlowToDyeing() {
	product, _ := s.catalog(10)
	order := s.createOrder(product, true)
	item := "/api/v1/order-items/" + order.ItemIDs[0].String()

	s.expect(s.do(http.MethodPost, item+"/inventory-check", &s.supervisor, nil), http.StatusOK)
	s.expect(s.do(http.MethodPost, item+"/packet", &s.supervisor, nil), http.StatusCreated)

	rec := s.do(http.MethodPost, item+"/packet/start", &s.picker, nil)
	s.expect(rec, http.StatusConflict)
	var failed ErrorResponse
	s.decode(rec, &failed)
	s.Equal("state_conflict", failed.Kind)

	s.expect(s.do(http.MethodPost, item+"/packet/assign", &s.supervisor, AssignPacketRequest{AssigneeID: s.picker}), http.StatusNoContent)
	s.expect(s.do(http.MethodPost, item+"/packet/start", &s.picker, nil), http.StatusNoContent)

	w := s.work(order.ItemIDs[0])
	s.Require().NotNil(w.Packet)
	s.Equal("IN_PROGRESS", w.Packet.Status)
	s.Require().Len(w.Packet.Lines, 1)
	line := w.Packet.Lines[0]
	s.Equal("shirt", line.Section)
	s.InDelta(2.5, line.Required, 1e-9)

	rec = s.do(http.MethodPost, item+"/packet/complete", &s.picker, nil)
	s.expect(rec, http.StatusUnprocessableEntity)
	s.decode(rec, &failed)
	s.Equal("incomplete_precondition", failed.Kind)

	pick := item + "/packet/lines/" + line.ID.String() + "/pick"
	s.expect(s.do(http.MethodPost, pick, &s.picker, PickLineRequest{Quantity: line.Required}), http.StatusNoContent)
	s.expect(s.do(http.MethodPost, item+"/packet/complete", &s.picker, nil), http.StatusNoContent)

	rec = s.do(http.MethodPost, item+"/packet/approve", &s.supervisor, ApprovePacketRequest{})
	s.expect(rec, http.StatusOK)
	var status OrderItemStatus
	s.decode(rec, &status)
	s.Equal("READY_FOR_DYEING", status.Status)
	s.Equal(order.ItemIDs[0], status.ID)
	s.Require().Len(status.Sections, 1)
	s.Equal(SectionStatus{Section: "shirt", Status: "READY_FOR_DYEING", UpdatedAt: status.Sections[0].UpdatedAt}, status.Sections[0])

	rec = s.do(http.MethodPost, item+"/dyeing/accept", &s.picker, SectionsRequest{Sections: []string{"shirt"}})
	s.expect(rec, http.StatusOK)
	s.decode(rec, &status)
	s.Equal("DYEING_ACCEPTED", status.Sections[0].Status)

	rec = s.do(http.MethodGet, "/api/v1/orders/"+order.ID.String()+"/timeline", nil, nil)
	s.expect(rec, http.StatusOK)
	var timeline []TimelineEntry
	s.decode(rec, &timeline)
	s.Require().NotEmpty(timeline)
	s.Equal("order_created", timeline[0].Action)
	s.Equal("dyeing_accepted", timeline[len(timeline)-1].Action)
}

func (s *ServerSuite) TestShortageIsListedAsDemand() {
	product, stock := s.catalog(1)
	order := s.createOrder(product, false)

	rec := s.do(http.MethodPost, "/api/v1/order-items/"+order.ItemIDs[0].String()+"/inventory-check", &s.supervisor, nil)
	s.expect(rec, http.StatusOK)
	var status OrderItemStatus
	s.decode(rec, &status)
	s.Equal("AWAITING_MATERIAL", status.Status)

	rec = s.do(http.MethodGet, "/api/v1/procurement-demands", nil, nil)
	s.expect(rec, http.StatusOK)
	var demands []ProcurementDemand
	s.decode(rec, &demands)
	s.Require().Len(demands, 1)
	s.Equal(stock, demands[0].InventoryItemID)
	s.Equal(order.ID, demands[0].OrderID)
	s.InDelta(1.5, demands[0].Shortage, 1e-9)

	s.expect(s.do(http.MethodPost, "/api/v1/inventory-items/"+stock.String()+"/receipts", nil, ReceiveStockRequest{Quantity: 5}), http.StatusNoContent)
	rec = s.do(http.MethodPost, "/api/v1/order-items/"+order.ItemIDs[0].String()+"/inventory-check", &s.supervisor, nil)
	s.expect(rec, http.StatusOK)

	rec = s.do(http.MethodGet, "/api/v1/procurement-demands", nil, nil)
	s.decode(rec, &demands)
	s.Empty(demands)
}

func (s *ServerSuite) TestWorkIsEmptyBeforePacket() {
	product, _ := s.catalog(10)
	order := s.createOrder(product, false)

	w := s.work(order.ItemIDs[0])
	s.Nil(w.Packet)
	s.Empty(w.Tasks)
}

func (s *ServerSuite) TestErrors() {
	product, _ := s.catalog(10)
	order := s.createOrder(product, false)
	item := "/api/v1/order-items/" + order.ItemIDs[0].String()

	tests := []struct {
		name   string
		method string
		path   string
		actor  *uuid.UUID
		body   any
		code   int
		kind   string
	}{
		{"missing actor", http.MethodPost, item + "/inventory-check", nil, nil, http.StatusBadRequest, "validation"},
		{"malformed id", http.MethodGet, "/api/v1/order-items/not-a-uuid", nil, nil, http.StatusBadRequest, "validation"},
		{"unknown item", http.MethodGet, "/api/v1/order-items/" + uuid.NewString(), nil, nil, http.StatusNotFound, "not_found"},
		{"unknown section", http.MethodPost, item + "/qa", &s.supervisor, SectionsRequest{Sections: []string{"sleeve"}}, http.StatusBadRequest, "validation"},
		{"packet not created", http.MethodPost, item + "/packet/start", &s.picker, nil, http.StatusNotFound, "not_found"},
		{"packet before check", http.MethodPost, item + "/packet", &s.supervisor, nil, http.StatusUnprocessableEntity, "incomplete_precondition"},
		{"unknown dyeing step", http.MethodPost, item + "/dyeing/boil", &s.supervisor, SectionsRequest{Sections: []string{"shirt"}}, http.StatusBadRequest, "validation"},
		{"no waiting item", http.MethodPost, "/api/v1/production-heads/assign-next", nil, nil, http.StatusNotFound, "not_found"},
		{"unknown route", http.MethodGet, "/api/v1/nowhere", nil, nil, http.StatusNotFound, "http"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(tt.method, tt.path, tt.actor, tt.body)
			s.expect(rec, tt.code)
			var body ErrorResponse
			s.decode(rec, &body)
			s.Equal(tt.kind, body.Kind)
			s.NotEmpty(body.Message)
		})
	}
}

func (s *ServerSuite) TestValidationNamesFields() {
	rec := s.do(http.MethodPost, "/api/v1/orders", &s.supervisor, CreateOrderRequest{
		Customer: CustomerRequest{Name: "Ayesha"},
		Items:    []OrderItemRequest{{ProductID: uuid.New(), Size: "M", Quantity: 1, BasePieces: []string{"sleeve"}}},
	})
	s.expect(rec, http.StatusBadRequest)

	var body struct {
		Kind   string            `json:"kind"`
		Detail map[string]string `json:"detail"`
	}
	s.decode(rec, &body)
	s.Equal("validation", body.Kind)
	s.Equal("is required", body.Detail["customer.phone"])
	s.Equal("is not a known section", body.Detail["items[0].basePieces[0]"])
}

func (s *ServerSuite) TestUrgencyRefresh() {
	s.expect(s.do(http.MethodPost, "/api/v1/orders/urgency", nil, RefreshUrgencyRequest{WindowDays: 3}), http.StatusNoContent)
	s.expect(s.do(http.MethodPost, "/api/v1/orders/urgency", nil, RefreshUrgencyRequest{}), http.StatusBadRequest)
}
