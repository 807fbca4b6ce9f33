package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"evcharge-service/internal/usecase"
	"evcharge-service/pkg/logger"
)

// AvailabilityHandler serves operator and slot availability lookups.
type AvailabilityHandler struct {
	matcher *usecase.OperatorMatcher
	slots   *usecase.SlotService
	logger  logger.Logger
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(matcher *usecase.OperatorMatcher, slots *usecase.SlotService, logger logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		matcher: matcher,
		slots:   slots,
		logger:  logger,
	}
}

// AvailableOperator handles GET /v1/stations/:id/operators/available?at=RFC3339
func (h *AvailabilityHandler) AvailableOperator(c echo.Context) error {
	at, err := parseTime(c.QueryParam("at"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at must be RFC3339"})
	}

	operator, err := h.matcher.FindAvailableOperator(c.Request().Context(), c.Param("id"), at)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, operator)
}

// StationSlots handles GET /v1/stations/:id/slots?date=2006-01-02
func (h *AvailabilityHandler) StationSlots(c echo.Context) error {
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	slots, err := h.slots.GetStationSlots(c.Request().Context(), c.Param("id"), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stationId": c.Param("id"),
		"date":      c.QueryParam("date"),
		"slots":     slots,
	})
}
