package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/forgeline/storefront-api/internal/core/domain"
	"github.com/forgeline/storefront-api/internal/core/ports"
)

// CatalogService is a thin pass-through over the catalog repository.
type CatalogService struct {
	repo ports.CatalogRepository
	log  zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

func (s *CatalogService) ListProducts(ctx context.Context, includeUnpublished bool) ([]*domain.Product, error) {
	return s.repo.ListProducts(ctx, !includeUnpublished)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindProduct(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	return s.repo.CreateProduct(ctx, &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Unit:        input.Unit,
		ImageURL:    input.ImageURL,
		IsPublished: input.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input ports.ProductInput) (*domain.Product, error) {
	product, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = input.Name
	product.Description = input.Description
	product.Category = input.Category
	product.Price = input.Price
	product.Unit = input.Unit
	product.ImageURL = input.ImageURL
	product.IsPublished = input.IsPublished
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *CatalogService) ListServices(ctx context.Context, includeUnpublished bool) ([]*domain.ServiceOffering, error) {
	return s.repo.ListServices(ctx, !includeUnpublished)
}

func (s *CatalogService) CreateService(ctx context.Context, input ports.ServiceInput) (*domain.ServiceOffering, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	return s.repo.CreateService(ctx, &domain.ServiceOffering{
		Name:        input.Name,
		Description: input.Description,
		IsPublished: input.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	return s.repo.DeleteService(ctx, id)
}

func (s *CatalogService) ListStaff(ctx context.Context) ([]*domain.StaffMember, error) {
	return s.repo.ListStaff(ctx)
}

func (s *CatalogService) CreateStaff(ctx context.Context, input ports.StaffInput) (*domain.StaffMember, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	return s.repo.CreateStaff(ctx, &domain.StaffMember{
		Name:      input.Name,
		Title:     input.Title,
		PhotoURL:  input.PhotoURL,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *CatalogService) DeleteStaff(ctx context.Context, id string) error {
	return s.repo.DeleteStaff(ctx, id)
}
