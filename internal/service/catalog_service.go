package service

import (
	"context"
	"errors"

	"ombela/internal/domain"
	"ombela/internal/repository"
)

// CatalogService wraps the catalog store with input validation and the
// defaults the admin panel applies when creating products.
type CatalogService struct {
	catalog *repository.Catalog
}

func NewCatalogService(catalog *repository.Catalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

var ErrInvalidInput = errors.New("invalid input")

func (s *CatalogService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.Name == "" || p.Description == "" || p.Price.IsNegative() {
		return nil, ErrInvalidInput
	}
	if p.Stars == 0 {
		p.Stars = 4
	}
	if p.Stars < 1 || p.Stars > 5 {
		return nil, ErrInvalidInput
	}
	if p.Image == "" {
		p.Image = domain.DefaultImage
	}
	return s.catalog.Insert(ctx, p)
}

func (s *CatalogService) Update(ctx context.Context, id int64, patch repository.ProductPatch) (*domain.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	if patch.Name != nil && *patch.Name == "" {
		return nil, ErrInvalidInput
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return nil, ErrInvalidInput
	}
	if patch.Stars != nil && (*patch.Stars < 1 || *patch.Stars > 5) {
		return nil, ErrInvalidInput
	}
	return s.catalog.Update(ctx, id, patch)
}

func (s *CatalogService) Remove(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.catalog.Remove(ctx, id)
}

func (s *CatalogService) ByID(id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.catalog.ByID(id)
}

func (s *CatalogService) All() []domain.Product { return s.catalog.All() }

func (s *CatalogService) Search(term string) []domain.Product { return s.catalog.Search(term) }

func (s *CatalogService) ByCategory(category string) []domain.Product {
	return s.catalog.ByCategory(category)
}

func (s *CatalogService) SortedByPrice(dir repository.SortDirection) []domain.Product {
	return s.catalog.SortedByPrice(dir)
}
