// Package pgconv converts between domain values and the column types used by
// the GORM repositories.
package pgconv

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ID converts a stored uuid to a domain id.
func ID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

// OptionalID converts a nullable domain id to its column value.
func OptionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

// FromOptionalID converts a nullable column back to a domain id.
func FromOptionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := ID(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Sections stores sections as a text[] column.
func Sections(in []kernel.Section) pq.StringArray {
	out := make(pq.StringArray, 0, len(in))
	for _, s := range in {
		out = append(out, s.String())
	}
	return out
}

// FromSections reads a text[] column. Stored values were validated on write.
func FromSections(in pq.StringArray) []kernel.Section {
	out := make([]kernel.Section, 0, len(in))
	for _, s := range in {
		out = append(out, kernel.Section(s))
	}
	return out
}

// NotFound maps gorm.ErrRecordNotFound to the domain not found error and
// passes every other error through.
func NotFound(err error, param string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundErrorWithCause(param, id, err)
	}
	return err
}
