package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"evcharge-service/internal/usecase"
	"evcharge-service/pkg/logger"
	"evcharge-service/pkg/metrics"
)

// ScanHandler exposes token issuance, verification and the session
// check-in / completion flow.
type ScanHandler struct {
	scans   *usecase.ScanService
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scans *usecase.ScanService, metrics *metrics.Metrics, logger logger.Logger) *ScanHandler {
	return &ScanHandler{
		scans:   scans,
		metrics: metrics,
		logger:  logger,
	}
}

// IssueToken handles POST /v1/bookings/:id/token
func (h *ScanHandler) IssueToken(c echo.Context) error {
	token, err := h.scans.Issue(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

type scanRequest struct {
	Token string `json:"token"`
}

// Scan handles POST /v1/scan
func (h *ScanHandler) Scan(c echo.Context) error {
	var body scanRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	result, err := h.scans.Scan(c.Request().Context(), body.Token)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// CheckIn handles POST /v1/scan/checkin
func (h *ScanHandler) CheckIn(c echo.Context) error {
	var body scanRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	booking, err := h.scans.CheckIn(c.Request().Context(), body.Token)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

// CompleteSession handles POST /v1/bookings/:id/complete
func (h *ScanHandler) CompleteSession(c echo.Context) error {
	actor := actorFrom(c)

	var body struct {
		EnergyKWh float64 `json:"energyKwh"`
		Notes     string  `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	booking, err := h.scans.CompleteSession(c.Request().Context(), actor, usecase.CompleteSessionInput{
		BookingID: c.Param("id"),
		EnergyKWh: body.EnergyKWh,
		Notes:     body.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}

	h.metrics.SessionsCompleted.Inc()
	return c.JSON(http.StatusOK, booking)
}
