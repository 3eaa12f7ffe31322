// Package memory keeps the whole workflow in process memory. It backs local
// runs and the workflow tests with the same unit of work contract as the
// Postgres adapter.
//
// Transactions are serialized: Begin takes the store for the duration of the
// unit of work and works on a copy of the data, which Commit swaps in and
// Rollback drops. Aggregates are kept as persisted state and restored on
// every read, so callers never share memory with the store.
package memory

import (
	"context"
	"errors"
	"maps"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/bom"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/packet"
	"fulfillment/internal/core/domain/model/production"
	"fulfillment/internal/core/domain/model/timeline"
)

// ErrNoTransaction is returned by repositories and by Commit or Rollback when
// the unit of work has not begun.
var ErrNoTransaction = errors.New("memory: no active transaction")

type bomRecord struct {
	ID        kernel.UUID
	ProductID kernel.UUID
	Size      string
	Version   int
	IsActive  bool
	Items     []bom.Item
	CreatedAt time.Time
}

type stockRecord struct {
	ID           kernel.UUID
	Name         string
	Unit         string
	RackLocation string
	OnHand       float64
	Reserved     float64
}

type reservationRecord struct {
	ID              kernel.UUID
	OrderItemID     kernel.UUID
	InventoryItemID kernel.UUID
	Section         kernel.Section
	Quantity        float64
	Status          inventory.ReservationStatus
	CreatedAt       time.Time
	ClosedAt        *time.Time
}

type headRecord struct {
	ID        kernel.UUID
	Name      string
	Active    bool
	SortOrder int
}

// data is one consistent version of everything the store holds. Records are
// replaced, never mutated in place, so a shallow copy of the maps is a
// snapshot.
type data struct {
	orders       map[kernel.UUID]order.State
	items        map[kernel.UUID]orderitem.State
	boms         map[kernel.UUID]bomRecord
	stock        map[kernel.UUID]stockRecord
	reservations map[kernel.UUID]reservationRecord
	demands      []inventory.Demand
	packets      map[kernel.UUID]packet.State // by order item
	heads        map[kernel.UUID]headRecord
	cursor       int
	tasks        map[kernel.UUID]production.TaskState
	entries      []timeline.Entry
}

func newData() *data {
	return &data{
		orders:       make(map[kernel.UUID]order.State),
		items:        make(map[kernel.UUID]orderitem.State),
		boms:         make(map[kernel.UUID]bomRecord),
		stock:        make(map[kernel.UUID]stockRecord),
		reservations: make(map[kernel.UUID]reservationRecord),
		packets:      make(map[kernel.UUID]packet.State),
		heads:        make(map[kernel.UUID]headRecord),
		cursor:       production.NewCursor().LastIndex(),
		tasks:        make(map[kernel.UUID]production.TaskState),
	}
}

func (d *data) clone() *data {
	return &data{
		orders:       maps.Clone(d.orders),
		items:        maps.Clone(d.items),
		boms:         maps.Clone(d.boms),
		stock:        maps.Clone(d.stock),
		reservations: maps.Clone(d.reservations),
		demands:      slices.Clone(d.demands),
		packets:      maps.Clone(d.packets),
		heads:        maps.Clone(d.heads),
		cursor:       d.cursor,
		tasks:        maps.Clone(d.tasks),
		entries:      slices.Clone(d.entries),
	}
}

// Store is the shared state behind every unit of work and reader created from it.
type Store struct {
	sem  chan struct{}
	data *data
}

func NewStore() *Store {
	return &Store{
		sem:  make(chan struct{}, 1),
		data: newData(),
	}
}

// acquire waits for exclusive access or for ctx to end.
func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() { <-s.sem }

// read runs fn against the committed data.
func (s *Store) read(ctx context.Context, fn func(d *data) error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()
	return fn(s.data)
}
