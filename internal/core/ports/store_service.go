package ports

import (
	"context"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

type StoreService interface {
	Status(ctx context.Context) (*domain.StoreStatus, error)
	SetStatus(ctx context.Context, state domain.StoreState) (*domain.StoreStatus, error)
}
