package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/packetrepo"
	"fulfillment/internal/adapters/out/postgres/productionrepo"
	"fulfillment/internal/adapters/out/postgres/stockrepo"
	"fulfillment/internal/adapters/out/postgres/timelinerepo"
)

// Tables lists every table in truncation-safe order.
var Tables = []string{
	"timeline_entries",
	"production_tasks",
	"head_cursor",
	"packet_lines",
	"packets",
	"reservations",
	"procurement_demands",
	"custom_bom_lines",
	"material_requirements",
	"order_item_sections",
	"order_items",
	"payments",
	"orders",
	"bom_items",
	"boms",
	"inventory_items",
	"production_heads",
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&catalogrepo.InventoryItemDTO{},
		&catalogrepo.BOMDTO{},
		&catalogrepo.BOMItemDTO{},
		&catalogrepo.ProductionHeadDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.PaymentDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.SectionDTO{},
		&orderrepo.RequirementDTO{},
		&orderrepo.CustomBOMLineDTO{},
		&stockrepo.ReservationDTO{},
		&stockrepo.DemandDTO{},
		&packetrepo.PacketDTO{},
		&packetrepo.LineDTO{},
		&productionrepo.TaskDTO{},
		&productionrepo.CursorDTO{},
		&timelinerepo.EntryDTO{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
