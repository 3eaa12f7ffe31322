package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/pkg/errs"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Detail  any    `json:"detail,omitempty"`
}

type stateConflictDetail struct {
	Entity   string   `json:"entity"`
	Current  string   `json:"current"`
	Required []string `json:"required"`
}

type preconditionDetail struct {
	Reason string   `json:"reason"`
	Items  []string `json:"items"`
}

// statusOf maps an error to its status code and response body.
func statusOf(err error) (int, ErrorResponse) {
	var (
		validationErrs validator.ValidationErrors
		conflict       *errs.StateConflictError
		precondition   *errs.IncompletePreconditionError
		httpErr        *echo.HTTPError
	)

	switch {
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest, ErrorResponse{Kind: "validation", Message: "request is invalid", Detail: validationFields(validationErrs)}
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, ErrorResponse{Kind: "validation", Message: err.Error()}
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, commands.ErrNoItemAwaitsHead):
		return http.StatusNotFound, ErrorResponse{Kind: "not_found", Message: err.Error()}
	case errors.As(err, &conflict):
		return http.StatusConflict, ErrorResponse{Kind: "state_conflict", Message: err.Error(),
			Detail: stateConflictDetail{Entity: conflict.Entity, Current: conflict.Current, Required: conflict.Required}}
	case errors.Is(err, errs.ErrStateConflict):
		return http.StatusConflict, ErrorResponse{Kind: "state_conflict", Message: err.Error()}
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict, ErrorResponse{Kind: "version_conflict", Message: err.Error()}
	case errors.As(err, &precondition):
		return http.StatusUnprocessableEntity, ErrorResponse{Kind: "incomplete_precondition", Message: err.Error(),
			Detail: preconditionDetail{Reason: precondition.Reason, Items: precondition.Items}}
	case errors.As(err, &httpErr):
		return httpErr.Code, ErrorResponse{Kind: "http", Message: http.StatusText(httpErr.Code)}
	default:
		return http.StatusInternalServerError, ErrorResponse{Kind: "internal", Message: "internal error"}
	}
}

// ErrorHandler writes errors returned by handlers as ErrorResponse bodies.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := statusOf(err)
		if code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("path", c.Path()), slog.Any("error", err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", slog.Any("error", err))
		}
	}
}
