package bom

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrBOMIsNotConstructed = errors.New("BOM must be created via NewBOM constructor")

// BOM is a versioned recipe for one (product, size). Activation is exclusive
// among siblings sharing the same product and size; see Activate.
type BOM struct {
	id            kernel.UUID
	productID     kernel.UUID
	size          string
	version       int
	isActive      bool
	items         []Item
	createdAt     time.Time
	isConstructed bool
}

// NewBOM creates an inactive BOM. The version is assigned by the caller as
// one above the highest existing version for the same product and size.
func NewBOM(id, productID kernel.UUID, size string, version int, items []Item, now time.Time) (*BOM, error) {
	b := &BOM{
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setProduct(productID),
		b.setSize(size),
		b.setVersion(version),
		b.setItems(items),
	); err != nil {
		return nil, err
	}
	return b, nil
}

// RestoreBOM rebuilds a persisted BOM.
func RestoreBOM(
	id, productID kernel.UUID,
	size string,
	version int,
	isActive bool,
	items []Item,
	createdAt time.Time,
) *BOM {
	return &BOM{
		id:            id,
		productID:     productID,
		size:          size,
		version:       version,
		isActive:      isActive,
		items:         slices.Clone(items),
		createdAt:     createdAt,
		isConstructed: true,
	}
}

func (b *BOM) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBOMIsNotConstructed
	}
	return nil
}

func (b *BOM) ID() kernel.UUID        { return b.id }
func (b *BOM) ProductID() kernel.UUID { return b.productID }
func (b *BOM) Size() string           { return b.size }
func (b *BOM) Version() int           { return b.version }
func (b *BOM) IsActive() bool         { return b.isActive }
func (b *BOM) CreatedAt() time.Time   { return b.createdAt }
func (b *BOM) Items() []Item          { return slices.Clone(b.items) }

// IsSiblingOf reports whether both BOMs describe the same product and size.
func (b *BOM) IsSiblingOf(other *BOM) bool {
	return other != nil && b.productID.IsEqual(other.productID) && b.size == other.size
}

// Activate makes target the only active BOM among siblings. BOMs of other sizes
// or products in siblings are rejected rather than touched. It returns every BOM
// whose flag changed, target included.
func Activate(target *BOM, siblings []*BOM) ([]*BOM, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	for _, s := range siblings {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if !target.IsSiblingOf(s) {
			return nil, errs.NewValueIsInvalidErrorWithCause("bom",
				fmt.Errorf("%s is not a sibling of %s", s.id, target.id))
		}
	}

	changed := make([]*BOM, 0, len(siblings)+1)
	for _, s := range siblings {
		if s.id.IsEqual(target.id) || !s.isActive {
			continue
		}
		s.isActive = false
		changed = append(changed, s)
	}
	if !target.isActive {
		target.isActive = true
		changed = append(changed, target)
	}
	return changed, nil
}

// NextVersion returns one above the highest version in existing.
func NextVersion(existing []*BOM) int {
	highest := 0
	for _, b := range existing {
		if b.version > highest {
			highest = b.version
		}
	}
	return highest + 1
}

func (b *BOM) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *BOM) setProduct(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	b.productID = productID
	return nil
}

func (b *BOM) setSize(size string) error {
	normalized, err := NormalizeSize(size)
	if err != nil {
		return err
	}
	b.size = normalized
	return nil
}

func (b *BOM) setVersion(version int) error {
	if version < 1 {
		return errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is not greater than 0", version))
	}
	b.version = version
	return nil
}

func (b *BOM) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("bom items")
	}
	b.items = slices.Clone(items)
	return nil
}
