package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"evcharge-service/internal/domain/repository"
	"evcharge-service/pkg/logger"
	"evcharge-service/pkg/utils"
)

// AuthHandler issues access tokens. Account management itself lives
// outside this service; only login against the account directory is
// exposed here.
type AuthHandler struct {
	accounts repository.AccountRepository
	secret   string
	tokenTTL time.Duration
	logger   logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accounts repository.AccountRepository, secret string, tokenTTL time.Duration, logger logger.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil || body.Email == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	account, err := h.accounts.FindByEmail(c.Request().Context(), body.Email)
	if err != nil {
		h.logger.Error("login lookup failed", "email", body.Email, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if account == nil || !utils.CheckPassword(account.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if !account.Active {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account is deactivated"})
	}

	token, exp, err := utils.NewAccessToken(h.secret, account.ID, account.Role, h.tokenTTL)
	if err != nil {
		h.logger.Error("failed to sign access token", "accountId", account.ID, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"accessToken": token,
		"expiresAt":   exp.Format(time.RFC3339),
		"role":        account.Role,
	})
}
