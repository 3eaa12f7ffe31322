package order

import (
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Payment is one amount received against an order. Amounts are in minor
// currency units.
type Payment struct {
	ID         kernel.UUID
	Amount     int64
	Method     string
	Reference  string
	ReceivedAt time.Time
}

// NewPayment validates and builds a payment record.
func NewPayment(id kernel.UUID, amount int64, method, reference string, receivedAt time.Time) (Payment, error) {
	if err := id.Validate(); err != nil {
		return Payment{}, err
	}
	if amount <= 0 {
		return Payment{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is not greater than 0", amount))
	}
	method = strings.TrimSpace(method)
	if method == "" {
		return Payment{}, errs.NewValueIsRequiredError("method")
	}
	return Payment{
		ID:         id,
		Amount:     amount,
		Method:     method,
		Reference:  strings.TrimSpace(reference),
		ReceivedAt: receivedAt,
	}, nil
}
