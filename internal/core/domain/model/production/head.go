package production

import (
	"cmp"
	"errors"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrHeadIsNotConstructed = errors.New("Head must be created via NewHead constructor")

// Head is a production supervisor who oversees order items end to end.
type Head struct {
	id            kernel.UUID
	name          string
	active        bool
	sortOrder     int
	isConstructed bool
}

func NewHead(id kernel.UUID, name string, sortOrder int) (*Head, error) {
	h := &Head{active: true, sortOrder: sortOrder, isConstructed: true}
	name = strings.TrimSpace(name)
	if err := errors.Join(id.Validate(), requireName(name)); err != nil {
		return nil, err
	}
	h.id = id
	h.name = name
	return h, nil
}

func RestoreHead(id kernel.UUID, name string, active bool, sortOrder int) *Head {
	return &Head{id: id, name: name, active: active, sortOrder: sortOrder, isConstructed: true}
}

func (h *Head) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHeadIsNotConstructed
	}
	return nil
}

func (h *Head) ID() kernel.UUID { return h.id }
func (h *Head) Name() string    { return h.name }
func (h *Head) IsActive() bool  { return h.active }
func (h *Head) SortOrder() int  { return h.sortOrder }

func (h *Head) Deactivate() { h.active = false }
func (h *Head) Activate()   { h.active = true }

// ActiveHeads returns the active heads in rotation order: sort order, then id.
func ActiveHeads(heads []*Head) []*Head {
	out := make([]*Head, 0, len(heads))
	for _, h := range heads {
		if h != nil && h.active {
			out = append(out, h)
		}
	}
	slices.SortStableFunc(out, func(a, b *Head) int {
		return cmp.Or(cmp.Compare(a.sortOrder, b.sortOrder), cmp.Compare(a.id.String(), b.id.String()))
	})
	return out
}

func requireName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}
