package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dinedesk/restaurant-system/internal/api/handler"
	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// errorStatuses maps domain errors to HTTP status codes. The first match wins.
var errorStatuses = []struct {
	err  error
	code int
}{
	{domain.ErrDuplicateUsername, http.StatusConflict},
	{domain.ErrDuplicateEmail, http.StatusConflict},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrUnauthenticated, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrEmptyCart, http.StatusBadRequest},
	{domain.ErrMissingCustomerName, http.StatusBadRequest},
	{domain.ErrInvalidQuantity, http.StatusBadRequest},
	{domain.ErrInvalidPrice, http.StatusBadRequest},
	{domain.ErrItemUnavailable, http.StatusBadRequest},
	{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler rendering
// {"error": "<message>"}. Domain errors keep their message; anything
// unrecognised is logged and reported as a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		if code == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Error()
	}
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.code, e.err.Error()
		}
	}
	return http.StatusInternalServerError, "internal server error"
}
