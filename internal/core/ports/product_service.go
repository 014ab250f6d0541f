package ports

import (
	"context"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	Name        string
	Price       float64
	Image       string
	Category    string
	Tags        []string
	Description string
	// InStock is optional: nil means true on create and unchanged on update.
	InStock *bool
}

// ProductService defines the catalog use cases.
type ProductService interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Facets(ctx context.Context) (*domain.Facets, error)
}
