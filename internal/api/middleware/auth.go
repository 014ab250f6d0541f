package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/elegance/jewelry-catalog/internal/api/metrics"
	"github.com/elegance/jewelry-catalog/internal/core/domain"
	"github.com/elegance/jewelry-catalog/internal/core/ports"
)

// ClaimsKey is the echo.Context key under which Auth stores *domain.Claims.
const ClaimsKey = "claims"

// RevocationChecker reports whether an admin's tokens were revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, adminID string) (bool, error)
}

// Auth verifies the bearer token and injects the decoded claims into context.
// revoked may be nil. A failing revocation lookup rejects the request.
func Auth(verifier ports.TokenVerifier, revoked RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			claims, err := verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return err
			}

			if revoked != nil {
				isRevoked, err := revoked.IsRevoked(c.Request().Context(), claims.AdminID)
				if err != nil {
					return fmt.Errorf("check token revocation: %w", err)
				}
				if isRevoked {
					metrics.AuthRejectionsTotal.WithLabelValues("revoked").Inc()
					return domain.ErrInvalidToken
				}
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Auth, if any.
func ClaimsFrom(c echo.Context) (*domain.Claims, bool) {
	claims, ok := c.Get(ClaimsKey).(*domain.Claims)
	return claims, ok && claims != nil
}
