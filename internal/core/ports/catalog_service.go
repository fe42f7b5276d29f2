package ports

import (
	"context"

	"github.com/forgeline/storefront-api/internal/core/domain"
)

// ProductInput carries the editable fields of a catalog product.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Price       float64
	Unit        string
	ImageURL    string
	IsPublished bool
}

// ServiceInput carries the editable fields of a service offering.
type ServiceInput struct {
	Name        string
	Description string
	IsPublished bool
}

// StaffInput carries the editable fields of a staff member entry.
type StaffInput struct {
	Name     string
	Title    string
	PhotoURL string
}

// CatalogService manages products, service offerings and staff entries.
// Public callers see published entries only; the admin console sees all.
type CatalogService interface {
	ListProducts(ctx context.Context, includeUnpublished bool) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListServices(ctx context.Context, includeUnpublished bool) ([]*domain.ServiceOffering, error)
	CreateService(ctx context.Context, input ServiceInput) (*domain.ServiceOffering, error)
	DeleteService(ctx context.Context, id string) error

	ListStaff(ctx context.Context) ([]*domain.StaffMember, error)
	CreateStaff(ctx context.Context, input StaffInput) (*domain.StaffMember, error)
	DeleteStaff(ctx context.Context, id string) error
}
