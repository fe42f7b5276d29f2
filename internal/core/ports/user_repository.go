package ports

import (
	"context"

	"github.com/forgeline/storefront-api/internal/core/domain"
)

// UserRepository defines the persistence interface for identities. Every
// email passed in must already be normalized to lowercase.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// UpdatePassword stores a new hash and the new temporary flag in a
	// single point update.
	UpdatePassword(ctx context.Context, id, passwordHash string, temporary bool) error
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
