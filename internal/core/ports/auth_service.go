package ports

import (
	"context"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.Admin, error)
	Login(ctx context.Context, email, password string) (string, *domain.Admin, error)
}

// TokenVerifier decodes and validates bearer tokens.
type TokenVerifier interface {
	Verify(raw string) (*domain.Claims, error)
}
