package orderitem

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/bom"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/section"
	"fulfillment/internal/pkg/errs"
)

var ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem constructor")

// Spec describes a garment as ordered.
type Spec struct {
	ProductID      kernel.UUID
	Size           string
	Quantity       int
	BasePieces     []kernel.Section
	AddOnPieces    []kernel.Section
	RequiresDyeing bool
	CustomBOM      []bom.Item
}

// State is the persisted form of an OrderItem.
type State struct {
	ID                   kernel.UUID
	OrderID              kernel.UUID
	ProductID            kernel.UUID
	Size                 string
	Quantity             int
	BasePieces           []kernel.Section
	AddOnPieces          []kernel.Section
	RequiresDyeing       bool
	Status               Status
	Sections             map[kernel.Section]section.Record
	MaterialRequirements []MaterialRequirement
	CustomBOM            []bom.Item
	ProductionHeadID     *kernel.UUID
	DyeingHolderID       *kernel.UUID
	PacketPhase          PacketPhase
	Version              int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// OrderItem is the aggregate root of the section workflow. It owns one
// section record per garment piece and keeps its own status equal to
// Aggregate(section statuses, packet phase) after every mutation.
//
// Invariants:
//   - exactly one record per relevant piece (base pieces plus add-ons)
//   - custom sized items carry their own BOM lines
//   - at most one dyeing worker holds acceptance at a time
//   - a production head, once assigned, never changes
type OrderItem struct {
	id                   kernel.UUID
	orderID              kernel.UUID
	productID            kernel.UUID
	size                 string
	quantity             int
	basePieces           []kernel.Section
	addOnPieces          []kernel.Section
	requiresDyeing       bool
	status               Status
	sections             map[kernel.Section]section.Record
	materialRequirements []MaterialRequirement
	customBOM            []bom.Item
	productionHeadID     *kernel.UUID
	dyeingHolderID       *kernel.UUID
	packetPhase          PacketPhase
	version              int
	createdAt            time.Time
	updatedAt            time.Time
	isConstructed        bool
}

// NewOrderItem creates an item in INVENTORY_CHECK with every relevant section PENDING.
//
// Example:
//
//	item, err := orderitem.NewOrderItem(kernel.NewUUID(), orderID, orderitem.Spec{
//	    ProductID:   productID,
//	    Size:        "M",
//	    Quantity:    1,
//	    BasePieces:  []kernel.Section{kernel.Shirt},
//	    AddOnPieces: []kernel.Section{kernel.Dupatta},
//	}, time.Now())
func NewOrderItem(id, orderID kernel.UUID, spec Spec, now time.Time) (*OrderItem, error) {
	item := &OrderItem{
		requiresDyeing: spec.RequiresDyeing,
		status:         InventoryCheck,
		packetPhase:    PacketNone,
		createdAt:      now,
		updatedAt:      now,
		isConstructed:  true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setOrderID(orderID),
		item.setProduct(spec.ProductID),
		item.setQuantity(spec.Quantity),
		item.setPieces(spec.BasePieces, spec.AddOnPieces),
		item.setSizeAndBOM(spec.Size, spec.CustomBOM),
	); err != nil {
		return nil, err
	}

	item.sections = make(map[kernel.Section]section.Record, len(item.RelevantPieces()))
	for _, piece := range item.RelevantPieces() {
		item.sections[piece] = section.NewRecord(now)
	}
	return item, nil
}

// RestoreOrderItem rebuilds a persisted item without re-running intake rules.
func RestoreOrderItem(state State) (*OrderItem, error) {
	if err := errors.Join(state.ID.Validate(), state.OrderID.Validate(), state.Status.Validate()); err != nil {
		return nil, err
	}
	for s, rec := range state.Sections {
		if err := rec.Status.Validate(); err != nil {
			return nil, fmt.Errorf("section %s: %w", s, err)
		}
	}

	item := &OrderItem{
		id:                   state.ID,
		orderID:              state.OrderID,
		productID:            state.ProductID,
		size:                 state.Size,
		quantity:             state.Quantity,
		basePieces:           slices.Clone(state.BasePieces),
		addOnPieces:          slices.Clone(state.AddOnPieces),
		requiresDyeing:       state.RequiresDyeing,
		status:               state.Status,
		sections:             cloneSections(state.Sections),
		materialRequirements: cloneRequirements(state.MaterialRequirements),
		customBOM:            slices.Clone(state.CustomBOM),
		productionHeadID:     cloneID(state.ProductionHeadID),
		dyeingHolderID:       cloneID(state.DyeingHolderID),
		packetPhase:          state.PacketPhase,
		version:              state.Version,
		createdAt:            state.CreatedAt,
		updatedAt:            state.UpdatedAt,
		isConstructed:        true,
	}
	return item, nil
}

// State returns a deep copy suitable for persistence.
func (i *OrderItem) State() State {
	return State{
		ID:                   i.id,
		OrderID:              i.orderID,
		ProductID:            i.productID,
		Size:                 i.size,
		Quantity:             i.quantity,
		BasePieces:           slices.Clone(i.basePieces),
		AddOnPieces:          slices.Clone(i.addOnPieces),
		RequiresDyeing:       i.requiresDyeing,
		Status:               i.status,
		Sections:             cloneSections(i.sections),
		MaterialRequirements: cloneRequirements(i.materialRequirements),
		CustomBOM:            slices.Clone(i.customBOM),
		ProductionHeadID:     cloneID(i.productionHeadID),
		DyeingHolderID:       cloneID(i.dyeingHolderID),
		PacketPhase:          i.packetPhase,
		Version:              i.version,
		CreatedAt:            i.createdAt,
		UpdatedAt:            i.updatedAt,
	}
}

func (i *OrderItem) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrOrderItemIsNotConstructed
	}
	return nil
}

func (i *OrderItem) ID() kernel.UUID          { return i.id }
func (i *OrderItem) OrderID() kernel.UUID     { return i.orderID }
func (i *OrderItem) ProductID() kernel.UUID   { return i.productID }
func (i *OrderItem) Size() string             { return i.size }
func (i *OrderItem) Quantity() int            { return i.quantity }
func (i *OrderItem) RequiresDyeing() bool     { return i.requiresDyeing }
func (i *OrderItem) Status() Status           { return i.status }
func (i *OrderItem) PacketPhase() PacketPhase { return i.packetPhase }
func (i *OrderItem) Version() int             { return i.version }
func (i *OrderItem) CreatedAt() time.Time     { return i.createdAt }
func (i *OrderItem) UpdatedAt() time.Time     { return i.updatedAt }

func (i *OrderItem) IsCustomSize() bool { return i.size == bom.SizeCustom }

func (i *OrderItem) CustomBOM() []bom.Item { return slices.Clone(i.customBOM) }

func (i *OrderItem) MaterialRequirements() []MaterialRequirement {
	return cloneRequirements(i.materialRequirements)
}

func (i *OrderItem) ProductionHead() *kernel.UUID { return cloneID(i.productionHeadID) }

func (i *OrderItem) DyeingHolder() *kernel.UUID { return cloneID(i.dyeingHolderID) }

// AdvanceVersion is called by repositories after a successful optimistic write.
func (i *OrderItem) AdvanceVersion() {
	i.version++
}

// RelevantPieces returns base pieces followed by add-on pieces, without duplicates.
func (i *OrderItem) RelevantPieces() []kernel.Section {
	out := make([]kernel.Section, 0, len(i.basePieces)+len(i.addOnPieces))
	for _, p := range slices.Concat(i.basePieces, i.addOnPieces) {
		if !kernel.ContainsSection(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// Section returns the record of one section.
func (i *OrderItem) Section(s kernel.Section) (section.Record, bool) {
	rec, ok := i.sections[s]
	if !ok {
		return section.Record{}, false
	}
	return rec.Clone(), true
}

// Sections returns a deep copy of every section record.
func (i *OrderItem) Sections() map[kernel.Section]section.Record {
	return cloneSections(i.sections)
}

// SectionStatuses returns the status per section.
func (i *OrderItem) SectionStatuses() map[kernel.Section]section.Status {
	out := make(map[kernel.Section]section.Status, len(i.sections))
	for s, rec := range i.sections {
		out[s] = rec.Status
	}
	return out
}

// SectionsIn returns, sorted, the sections currently in any of statuses.
func (i *OrderItem) SectionsIn(statuses ...section.Status) []kernel.Section {
	out := make([]kernel.Section, 0, len(i.sections))
	for s, rec := range i.sections {
		if slices.Contains(statuses, rec.Status) {
			out = append(out, s)
		}
	}
	return kernel.SortSections(out)
}

// SyncPacket records the packet phase and re-derives the item status.
func (i *OrderItem) SyncPacket(phase PacketPhase) {
	i.packetPhase = phase
	i.recompute()
}

type change struct {
	section kernel.Section
	event   section.Event
}

// apply validates every change before touching state, so a failure leaves the
// item unchanged. annotate may write workflow annexes on the new records.
func (i *OrderItem) apply(changes []change, now time.Time, annotate func(kernel.Section, *section.Record)) error {
	if len(changes) == 0 {
		return errs.NewValueIsRequiredError("sections")
	}

	next := make(map[kernel.Section]section.Record, len(changes))
	for _, c := range changes {
		rec, ok := next[c.section]
		if !ok {
			rec, ok = i.sections[c.section]
		}
		if !ok {
			return errs.NewObjectNotFoundError("section", c.section.String())
		}

		updated, err := rec.Apply(c.event, now)
		if err != nil {
			var conflict *errs.StateConflictError
			if errors.As(err, &conflict) {
				conflict.Entity = "section " + c.section.String()
			}
			return err
		}
		if annotate != nil {
			annotate(c.section, &updated)
		}
		next[c.section] = updated
	}

	maps.Copy(i.sections, next)
	i.updatedAt = now
	i.recompute()
	return nil
}

func (i *OrderItem) applyAll(sections []kernel.Section, e section.Event, now time.Time,
	annotate func(kernel.Section, *section.Record),
) error {
	changes := make([]change, 0, len(sections))
	for _, s := range sections {
		changes = append(changes, change{section: s, event: e})
	}
	return i.apply(changes, now, annotate)
}

func (i *OrderItem) recompute() {
	statuses := make([]section.Status, 0, len(i.sections))
	for _, rec := range i.sections {
		statuses = append(statuses, rec.Status)
	}
	derived := Aggregate(statuses, i.packetPhase)
	if i.status == Dispatched && derived != Completed {
		return
	}
	i.status = derived
}

func (i *OrderItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *OrderItem) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.orderID = id
	return nil
}

func (i *OrderItem) setProduct(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.productID = id
	return nil
}

func (i *OrderItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *OrderItem) setPieces(base, addOns []kernel.Section) error {
	if len(base) == 0 {
		return errs.NewValueIsRequiredError("base pieces")
	}
	for _, p := range slices.Concat(base, addOns) {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	i.basePieces = slices.Clone(base)
	i.addOnPieces = slices.Clone(addOns)
	return nil
}

func (i *OrderItem) setSizeAndBOM(size string, custom []bom.Item) error {
	normalized, err := bom.NormalizeSize(size)
	if err != nil {
		return err
	}
	if normalized == bom.SizeCustom && len(custom) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("custom bom", fmt.Errorf("size %q needs its own bill of materials", size))
	}
	i.size = normalized
	if normalized == bom.SizeCustom {
		i.customBOM = slices.Clone(custom)
	}
	return nil
}

func cloneSections(in map[kernel.Section]section.Record) map[kernel.Section]section.Record {
	out := make(map[kernel.Section]section.Record, len(in))
	for s, rec := range in {
		out[s] = rec.Clone()
	}
	return out
}

func cloneID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	copied := *id
	return &copied
}
