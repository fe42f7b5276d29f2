package ports

import (
	"context"

	"github.com/forgeline/storefront-api/internal/core/domain"
)

// CatalogRepository persists products, service offerings and staff members.
type CatalogRepository interface {
	ListProducts(ctx context.Context, publishedOnly bool) ([]*domain.Product, error)
	FindProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListServices(ctx context.Context, publishedOnly bool) ([]*domain.ServiceOffering, error)
	CreateService(ctx context.Context, s *domain.ServiceOffering) (*domain.ServiceOffering, error)
	UpdateService(ctx context.Context, s *domain.ServiceOffering) error
	DeleteService(ctx context.Context, id string) error

	ListStaff(ctx context.Context) ([]*domain.StaffMember, error)
	CreateStaff(ctx context.Context, m *domain.StaffMember) (*domain.StaffMember, error)
	DeleteStaff(ctx context.Context, id string) error
}
