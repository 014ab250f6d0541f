package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elegance/jewelry-catalog/internal/api/metrics"
	"github.com/elegance/jewelry-catalog/internal/core/domain"
	"github.com/elegance/jewelry-catalog/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register submits a new admin account for approval.
//
// @Summary      Register a new admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Admin registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /admin/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Name); err != nil {
		return err
	}

	metrics.AdminRegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, messageResponse{
		Message: "Registration submitted. Please wait for approval from the main admin.",
	})
}

// Login authenticates an approved admin and returns a bearer token.
//
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /admin/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.AdminLoginsTotal.WithLabelValues("invalid_request").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.AdminLoginsTotal.WithLabelValues("invalid_request").Inc()
		return err
	}

	token, admin, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AdminLoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.AdminLoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: toAdminView(admin)})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrPendingApproval):
		return "pending"
	case errors.Is(err, domain.ErrValidation):
		return "invalid_request"
	default:
		return "error"
	}
}
