package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/elegance/jewelry-catalog/internal/api/metrics"
	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

// RequireAccess lets the request through only when the authenticated role
// permits level. It must run after Auth.
func RequireAccess(level domain.Access) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if err := claims.Require(level); err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("insufficient_role").Inc()
				return err
			}
			return next(c)
		}
	}
}
