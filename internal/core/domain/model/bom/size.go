package bom

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// SizeCustom marks made-to-measure items that carry their own BOM.
const SizeCustom = "custom"

// NormalizeSize lower-cases and trims a size code.
func NormalizeSize(raw string) (string, error) {
	size := strings.ToLower(strings.TrimSpace(raw))
	if size == "" {
		return "", errs.NewValueIsRequiredError("size")
	}
	return size, nil
}
