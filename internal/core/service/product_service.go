package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
	"github.com/elegance/jewelry-catalog/internal/core/ports"
)

type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

// List returns the products matching filter, newest first. "all" is treated as
// no category filter and an inverted price range yields no products.
func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	if filter.Category == domain.AllCategories {
		filter.Category = ""
	}
	filter.Tags = domain.NormalizeTags(filter.Tags)
	filter.Search = strings.TrimSpace(filter.Search)

	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return []*domain.Product{}, nil
	}

	return s.repo.List(ctx, filter)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}

	inStock := true
	if input.InStock != nil {
		inStock = *input.InStock
	}

	now := time.Now().UTC()
	product, err := s.repo.Create(ctx, &domain.Product{
		Name:        input.Name,
		Price:       input.Price,
		Image:       input.Image,
		Category:    input.Category,
		Tags:        input.Tags,
		Description: input.Description,
		InStock:     inStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID).Str("category", product.Category).Msg("product created")
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, input ports.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Price = input.Price
	existing.Image = input.Image
	existing.Category = input.Category
	existing.Tags = input.Tags
	existing.Description = input.Description
	if input.InStock != nil {
		existing.InStock = *input.InStock
	}
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) Facets(ctx context.Context) (*domain.Facets, error) {
	return s.repo.Facets(ctx)
}

// validateProductInput trims text fields in place and enforces the product invariants.
func validateProductInput(in *ports.ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Image = strings.TrimSpace(in.Image)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	in.Tags = domain.NormalizeTags(in.Tags)

	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Image == "" {
		missing = append(missing, "image")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return domain.Validationf("%s required", strings.Join(missing, ", "))
	}
	if in.Price < 0 {
		return domain.Validationf("price must not be negative")
	}
	return nil
}
