package cmd

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
)

type unitOfWorkFactory interface {
	Create() ports.UnitOfWork
}

type reader interface {
	queries.OrderItemStatusReader
	queries.OrderItemWorkReader
	queries.ProcurementDemandReader
	queries.TimelineReader
}

type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	metrics    *httpin.Metrics
	closers    []func() error
	uowFactory unitOfWorkFactory
	reader     reader
}

// NewCompositionRoot wires the storage adapter picked by the configuration.
// gormDB is only used by the postgres driver and may be nil otherwise.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		metrics: httpin.NewMetrics(cfg.MetricsNamespace),
	}

	var next ports.TimelinePublisher
	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		publisher := kafka.NewTimelinePublisher(brokers, cfg.KafkaTimelineTopic)
		c.closers = append(c.closers, publisher.Close)
		next = publisher
	}
	publisher := c.metrics.ObservePublisher(next)

	if cfg.StorageDriver == StorageDriverMemory {
		store := memory.NewStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(store, publisher, logger)
		c.reader = memory.NewReader(store)
	} else {
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger)
		c.reader = postgres.NewReader(gormDB)
	}
	return c
}

func (c *CompositionRoot) Metrics() *httpin.Metrics {
	return c.metrics
}

func (c *CompositionRoot) uows() commands.UoWFactory {
	return commands.UoWFactoryFunc(func() commands.UoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) orders() commands.OrderUoWFactory {
	return commands.OrderUoWFactoryFunc(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) catalog() commands.CatalogUoWFactory {
	return commands.CatalogUoWFactoryFunc(func() commands.CatalogUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateRefreshUrgencyCommandHandler() commands.RefreshUrgencyCommandHandler {
	return commands.NewRefreshUrgencyCommandHandler(c.orders())
}

func (c *CompositionRoot) CreateAssignNextProductionHeadCommandHandler() commands.AssignNextProductionHeadCommandHandler {
	return commands.NewAssignNextProductionHeadCommandHandler(c.uows())
}

// CreateServer builds the HTTP server with one handler per operation.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	uows, orders, catalog := c.uows(), c.orders(), c.catalog()

	return httpin.NewServer(httpin.Handlers{
		CreateInventoryItem:      commands.NewCreateInventoryItemCommandHandler(catalog),
		ReceiveStock:             commands.NewReceiveStockCommandHandler(catalog),
		CreateBOM:                commands.NewCreateBOMCommandHandler(catalog),
		ActivateBOM:              commands.NewActivateBOMCommandHandler(catalog),
		CreateProductionHead:     commands.NewCreateProductionHeadCommandHandler(catalog),
		CreateOrder:              commands.NewCreateOrderCommandHandler(orders),
		RecordPayment:            commands.NewRecordPaymentCommandHandler(orders),
		DispatchOrder:            commands.NewDispatchOrderCommandHandler(orders),
		CompleteOrder:            commands.NewCompleteOrderCommandHandler(orders),
		RefreshUrgency:           c.CreateRefreshUrgencyCommandHandler(),
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
		AssignNextProductionHead: c.CreateAssignNextProductionHeadCommandHandler(),
		CreateProductionTasks:    commands.NewCreateProductionTasksCommandHandler(uows),
		StartTask:                commands.NewStartTaskCommandHandler(uows),
		CompleteTask:             commands.NewCompleteTaskCommandHandler(uows),
		SendToQA:                 commands.NewSendToQACommandHandler(orders),
		AddQAEvidence:            commands.NewAddQAEvidenceCommandHandler(orders),
		RequestClientApproval:    commands.NewRequestClientApprovalCommandHandler(orders),
		RecordClientApproval:     commands.NewRecordClientApprovalCommandHandler(orders),
		GetOrderItemStatus:       queries.NewGetOrderItemStatusQueryHandler(c.reader),
		GetOrderItemWork:         queries.NewGetOrderItemWorkQueryHandler(c.reader),
		ListProcurementDemands:   queries.NewListProcurementDemandsQueryHandler(c.reader),
		GetOrderTimeline:         queries.NewGetOrderTimelineQueryHandler(c.reader),
	})
}

// CreateJobManager schedules the urgency refresh and, when enabled, the
// automatic head assignment.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	urgency := jobs.NewUrgencyRefreshJob(
		c.CreateRefreshUrgencyCommandHandler(), c.cfg.UrgencyWindow(), c.cfg.UrgencySchedule, c.logger)

	var heads *jobs.HeadAssignmentJob
	if c.cfg.AutoAssignHeads {
		heads = jobs.NewHeadAssignmentJob(c.CreateAssignNextProductionHeadCommandHandler(), c.cfg.HeadSchedule, c.logger)
	}
	return jobs.NewJobManager(urgency, heads)
}

// StartJobs starts the scheduled jobs. When they cannot start, the root is
// closed before the error is returned.
func (c *CompositionRoot) StartJobs() (*jobs.JobManager, error) {
	manager := c.CreateJobManager()
	if err := manager.StartAll(); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	return manager, nil
}

// Close flushes the timeline publisher. Calling it again is a no-op.
func (c *CompositionRoot) Close() error {
	var err error
	for _, closeFn := range c.closers {
		err = errors.Join(err, closeFn())
	}
	c.closers = nil
	return err
}
