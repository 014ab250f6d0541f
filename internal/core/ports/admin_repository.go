package ports

import (
	"context"
	"time"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

// AdminRepository defines persistence for administrator accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	// List returns admins ordered by creation time. A nil role lists every admin.
	List(ctx context.Context, role *domain.Role) ([]*domain.Admin, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Admin, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// RevocationStore records admin ids whose outstanding tokens must stop working.
type RevocationStore interface {
	Revoke(ctx context.Context, adminID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, adminID string) (bool, error)
}
