package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		kind string
	}{
		{"required", errs.NewValueIsRequiredError("customer"), http.StatusBadRequest, "validation"},
		{"out of range", errs.NewValueIsOutOfRangeError("quantity", 0, 1, 100), http.StatusBadRequest, "validation"},
		{"joined invalid", errors.Join(errs.NewValueIsInvalidError("size"), errs.NewValueIsRequiredError("unit")), http.StatusBadRequest, "validation"},
		{"not found", errs.NewObjectNotFoundError("order", "42"), http.StatusNotFound, "not_found"},
		{"no waiting item", commands.ErrNoItemAwaitsHead, http.StatusNotFound, "not_found"},
		{"state conflict", errs.NewStateConflictError("packet", "ASSIGNED", "UNASSIGNED"), http.StatusConflict, "state_conflict"},
		{"stale version", errs.NewVersionIsInvalidError("order item", nil), http.StatusConflict, "version_conflict"},
		{"wrapped precondition", fmt.Errorf("complete: %w", errs.NewIncompletePreconditionError("unpicked lines", "Silk")), http.StatusUnprocessableEntity, "incomplete_precondition"},
		{"order without items", services.ErrOrderHasNoItems, http.StatusUnprocessableEntity, "incomplete_precondition"},
		{"echo error", echo.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, "http"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := statusOf(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.kind, body.Kind)
		})
	}
}

func TestStatusOf_StateConflictDetail(t *testing.T) {
	_, body := statusOf(errs.NewStateConflictError("section shirt", "PENDING", "READY_FOR_DYEING", "DYEING_ACCEPTED"))

	assert.Equal(t, stateConflictDetail{
		Entity:   "section shirt",
		Current:  "PENDING",
		Required: []string{"READY_FOR_DYEING", "DYEING_ACCEPTED"},
	}, body.Detail)
}

func TestStatusOf_InternalErrorHidesCause(t *testing.T) {
	_, body := statusOf(errors.New("pq: password authentication failed"))
	assert.Equal(t, "internal error", body.Message)
}
