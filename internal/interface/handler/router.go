package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"evcharge-service/internal/domain/entity"
)

// Handlers bundles the HTTP handlers registered on the server.
type Handlers struct {
	Auth         *AuthHandler
	Reservations *ReservationHandler
	Availability *AvailabilityHandler
	Scans        *ScanHandler
	Operators    *OperatorHandler
}

// RegisterRoutes mounts all API routes on the echo instance.
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/v1")
	v1.POST("/auth/login", h.Auth.Login)

	auth := v1.Group("", JWTAuth(jwtSecret))

	auth.POST("/reservations", h.Reservations.Create)
	auth.PATCH("/reservations/:id", h.Reservations.Update)
	auth.POST("/reservations/:id/cancel", h.Reservations.Cancel)
	auth.DELETE("/reservations/:id", h.Reservations.Delete, RequireRole(entity.RoleAdmin))
	auth.GET("/reservations/history/:nic", h.Reservations.History, RequireRole(entity.RoleOperator, entity.RoleAdmin))

	auth.GET("/sessions/me", h.Reservations.MySessions)
	auth.GET("/sessions/assigned", h.Reservations.AssignedSessions, RequireRole(entity.RoleOperator))

	auth.GET("/stations/:id/operators/available", h.Availability.AvailableOperator)
	auth.GET("/stations/:id/slots", h.Availability.StationSlots)
	auth.GET("/stations/:id/operators", h.Operators.ListByStation, RequireRole(entity.RoleOperator, entity.RoleAdmin))

	auth.POST("/operators", h.Operators.Create, RequireRole(entity.RoleAdmin))

	auth.POST("/bookings/:id/token", h.Scans.IssueToken)
	auth.POST("/scan", h.Scans.Scan, RequireRole(entity.RoleOperator, entity.RoleAdmin))
	auth.POST("/scan/checkin", h.Scans.CheckIn, RequireRole(entity.RoleOperator, entity.RoleAdmin))
	auth.POST("/bookings/:id/complete", h.Scans.CompleteSession, RequireRole(entity.RoleOperator, entity.RoleAdmin))
}
