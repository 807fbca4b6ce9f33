package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"evcharge-service/internal/domain/apperror"
	"evcharge-service/internal/domain/entity"
	"evcharge-service/internal/usecase"
	"evcharge-service/pkg/logger"
	"evcharge-service/pkg/metrics"
)

// ReservationHandler exposes the reservation lifecycle over HTTP.
type ReservationHandler struct {
	reservations *usecase.ReservationUsecase
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservations *usecase.ReservationUsecase, metrics *metrics.Metrics, logger logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		reservations: reservations,
		metrics:      metrics,
		logger:       logger,
	}
}

type reservationRequest struct {
	OwnerAccountID string `json:"ownerAccountId"`
	OwnerNIC       string `json:"ownerNic"`
	StationID      string `json:"stationId"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	Note           string `json:"note"`
}

// Create handles POST /v1/reservations. Non-admin callers always book
// for themselves; admins may book on behalf of an owner by NIC.
func (h *ReservationHandler) Create(c echo.Context) error {
	actor := actorFrom(c)

	var body reservationRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	start, err := parseTime(body.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "startTime must be RFC3339"})
	}
	end, err := parseTime(body.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "endTime must be RFC3339"})
	}

	in := usecase.CreateReservationInput{
		OwnerAccountID: body.OwnerAccountID,
		OwnerNIC:       body.OwnerNIC,
		StationID:      body.StationID,
		StartTime:      start,
		EndTime:        end,
		Note:           body.Note,
	}
	if !actor.Admin() {
		in.OwnerAccountID = actor.AccountID
		in.OwnerNIC = ""
	} else if in.OwnerAccountID == "" && in.OwnerNIC == "" {
		in.OwnerAccountID = actor.AccountID
	}

	reservation, err := h.reservations.Create(c.Request().Context(), actor, in)
	if err != nil {
		h.countRejection(err)
		return writeError(c, err)
	}

	h.metrics.ReservationsCreated.Inc()
	return c.JSON(http.StatusCreated, reservation)
}

// Update handles PATCH /v1/reservations/:id. Admins may pass
// ?override=true to bypass the 12-hour lockout.
func (h *ReservationHandler) Update(c echo.Context) error {
	actor := actorFrom(c)
	id := c.Param("id")

	var body struct {
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
		Status    *string `json:"status"`
		Note      *string `json:"note"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var in usecase.UpdateReservationInput
	if body.StartTime != nil {
		t, err := parseTime(*body.StartTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "startTime must be RFC3339"})
		}
		in.StartTime = &t
	}
	if body.EndTime != nil {
		t, err := parseTime(*body.EndTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "endTime must be RFC3339"})
		}
		in.EndTime = &t
	}
	if body.Status != nil {
		status := entity.ReservationStatus(*body.Status)
		in.Status = &status
	}
	in.Note = body.Note

	override := actor.Admin() && c.QueryParam("override") == "true"
	reservation, err := h.reservations.Update(c.Request().Context(), id, in, override)
	if err != nil {
		h.countRejection(err)
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

// Cancel handles POST /v1/reservations/:id/cancel
func (h *ReservationHandler) Cancel(c echo.Context) error {
	actor := actorFrom(c)
	override := actor.Admin() && c.QueryParam("override") == "true"

	reservation, err := h.reservations.Cancel(c.Request().Context(), c.Param("id"), override)
	if err != nil {
		h.countRejection(err)
		return writeError(c, err)
	}

	h.metrics.ReservationsCancelled.Inc()
	return c.JSON(http.StatusOK, reservation)
}

// Delete handles DELETE /v1/reservations/:id (admin purge)
func (h *ReservationHandler) Delete(c echo.Context) error {
	if err := h.reservations.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// History handles GET /v1/reservations/history/:nic
func (h *ReservationHandler) History(c echo.Context) error {
	reservations, err := h.reservations.HistoryByNIC(c.Request().Context(), c.Param("nic"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, reservations)
}

// MySessions handles GET /v1/sessions/me
func (h *ReservationHandler) MySessions(c echo.Context) error {
	actor := actorFrom(c)
	sessions, err := h.reservations.SessionsByUser(c.Request().Context(), actor.AccountID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sessions)
}

// AssignedSessions handles GET /v1/sessions/assigned?status=Approved
func (h *ReservationHandler) AssignedSessions(c echo.Context) error {
	actor := actorFrom(c)

	status := entity.BookingStatus(c.QueryParam("status"))
	if status == "" {
		status = entity.BookingApproved
	}

	bookings, err := h.reservations.AssignedSessions(c.Request().Context(), actor, status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *ReservationHandler) countRejection(err error) {
	switch apperror.KindOf(err) {
	case apperror.KindConflict:
		h.metrics.RejectionsTotal.WithLabelValues("conflict").Inc()
	case apperror.KindValidation:
		h.metrics.RejectionsTotal.WithLabelValues("validation").Inc()
	}
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
