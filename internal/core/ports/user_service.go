package ports

import (
	"context"

	"github.com/forgeline/storefront-api/internal/core/domain"
)

// CreateUserInput carries the fields an admin supplies when issuing an
// account. When Password is empty a temporary one is generated.
type CreateUserInput struct {
	Email       string
	Name        string
	Password    string
	Role        domain.Role
	CompanyName string
	GSTNo       string
}

// UpdateUserInput carries admin-editable profile fields. Nil pointers mean
// "leave unchanged".
type UpdateUserInput struct {
	Name        *string
	Role        *domain.Role
	IsActive    *bool
	CompanyName *string
	GSTNo       *string
}

// UserService is the admin-facing account management surface.
type UserService interface {
	// Create issues a new account with a temporary password and returns the
	// plaintext temporary password exactly once, for out-of-band delivery.
	Create(ctx context.Context, input CreateUserInput) (*domain.User, string, error)
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	// ResetPassword issues a fresh temporary password and flags the account
	// for a forced change on next login.
	ResetPassword(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}
