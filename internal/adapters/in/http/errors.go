package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/domain/model/step"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// Existing is the current state of a conflicting resource, such as a
	// booking that was already made.
	Existing any `json:"existing,omitempty"`
}

// statusOf maps core error kinds onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict), errors.Is(err, step.ErrCompletionBlocked):
		return http.StatusConflict
	case errors.Is(err, errs.ErrExternalService):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(c echo.Context, err error) error {
	code := statusOf(err)
	resp := ErrorResponse{Code: code, Message: err.Error()}

	var conflict *errs.ConflictError
	if errors.As(err, &conflict) {
		resp.Existing = conflict.Existing
	}

	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
		resp.Message = http.StatusText(code)
	}

	return c.JSON(code, resp)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: msg})
}
