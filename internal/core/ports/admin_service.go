package ports

import (
	"context"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

// AdminService covers the main-admin management operations.
type AdminService interface {
	ListPending(ctx context.Context) ([]*domain.Admin, error)
	ListAll(ctx context.Context) ([]*domain.Admin, error)
	Approve(ctx context.Context, id string) (*domain.Admin, error)
	Reject(ctx context.Context, id string) error
	// Delete removes any admin except the actor itself and the main admin.
	Delete(ctx context.Context, actor domain.Claims, id string) error
}
