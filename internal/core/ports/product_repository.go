package ports

import (
	"context"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	// List returns the products matching filter, newest first.
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// Update replaces the editable fields of an existing product.
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Facets(ctx context.Context) (*domain.Facets, error)
}
