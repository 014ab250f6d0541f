package ports

import (
	"context"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

// StoreStatusRepository persists the singleton store-status record.
type StoreStatusRepository interface {
	// GetOrInit returns the stored status, inserting initial when none exists yet.
	GetOrInit(ctx context.Context, initial domain.StoreStatus) (*domain.StoreStatus, error)
	Set(ctx context.Context, status domain.StoreStatus) (*domain.StoreStatus, error)
}
