package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type errorKind struct {
	target error
	status int
	kind   string
}

var errorKinds = []errorKind{
	{errs.ErrInvalidTransition, http.StatusUnprocessableEntity, "invalid_transition"},
	{errs.ErrOwnerMismatch, http.StatusUnprocessableEntity, "owner_mismatch"},
	{errs.ErrUnauthorized, http.StatusForbidden, "unauthorized"},
	{errs.ErrCapacityExceeded, http.StatusConflict, "capacity_exceeded"},
	{errs.ErrAlreadyBundled, http.StatusConflict, "already_bundled"},
	{errs.ErrConflict, http.StatusConflict, "conflict"},
	{errs.ErrObjectNotFound, http.StatusNotFound, "not_found"},
	{errs.ErrValueIsRequired, http.StatusBadRequest, "validation"},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, "validation"},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, "validation"},
}

// classify maps err to a status and kind. Internal errors are checked first
// so a wrapped domain sentinel inside an infrastructure failure stays a 500.
func classify(err error) (int, string) {
	if errors.Is(err, errs.ErrInternal) {
		return http.StatusInternalServerError, "internal"
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.status, k.kind
		}
	}
	return http.StatusInternalServerError, "internal"
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status, kind := classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		message = "internal error"
	}
	return ctx.JSON(status, Error{Code: status, Kind: kind, Message: message})
}

// ErrorHandler renders echo.HTTPError values (routing, binding, request
// validation) in the same shape as domain errors.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal error"
		kind := "internal"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
			kind = "request"
		} else {
			logger.ErrorContext(c.Request().Context(), "unhandled error", "path", c.Path(), "error", err)
		}

		if writeErr := c.JSON(status, Error{Code: status, Kind: kind, Message: message}); writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}
