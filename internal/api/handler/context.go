package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/elegance/jewelry-catalog/internal/api/middleware"
	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

// ctxClaims returns the claims injected by the Auth middleware. Their absence
// means the route was mounted without the gate.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return claims, nil
}
