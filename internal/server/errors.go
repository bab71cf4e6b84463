package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"blog_cms/internal/domain"
)

// mapDomainError converts a domain error into an echo.HTTPError. Backend
// details stay server-side; the caller only sees a generic message.
func mapDomainError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")

	case errors.Is(err, domain.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
