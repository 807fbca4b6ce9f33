package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"evcharge-service/internal/domain/apperror"
)

// writeError maps the failure taxonomy onto HTTP status codes. Unknown
// errors are reported as a plain 500 without leaking internals.
func writeError(c echo.Context, err error) error {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case apperror.KindNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case apperror.KindConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case apperror.KindUnauthorized:
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case apperror.KindConsistency:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal consistency failure"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
