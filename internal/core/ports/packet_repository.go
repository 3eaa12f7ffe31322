package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packet"
)

// PacketRepository defines the persistence contract for packets. An order
// item has at most one packet.
type PacketRepository interface {
	Add(ctx context.Context, aggregate *packet.Packet) error
	Update(ctx context.Context, aggregate *packet.Packet) error

	// GetByOrderItem returns the packet of an item or an ObjectNotFoundError.
	GetByOrderItem(ctx context.Context, orderItemID kernel.UUID) (*packet.Packet, error)
}
