package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"evcharge-service/internal/usecase"
	"evcharge-service/pkg/logger"
)

// OperatorHandler manages station operator profiles.
type OperatorHandler struct {
	operators *usecase.OperatorUsecase
	logger    logger.Logger
}

// NewOperatorHandler creates a new operator handler
func NewOperatorHandler(operators *usecase.OperatorUsecase, logger logger.Logger) *OperatorHandler {
	return &OperatorHandler{
		operators: operators,
		logger:    logger,
	}
}

// Create handles POST /v1/operators (admin only)
func (h *OperatorHandler) Create(c echo.Context) error {
	var body struct {
		AccountID string `json:"accountId"`
		StationID string `json:"stationId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	operator, err := h.operators.CreateProfile(c.Request().Context(), usecase.CreateOperatorInput{
		AccountID: body.AccountID,
		StationID: body.StationID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, operator)
}

// ListByStation handles GET /v1/stations/:id/operators
func (h *OperatorHandler) ListByStation(c echo.Context) error {
	operators, err := h.operators.ListByStation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, operators)
}
