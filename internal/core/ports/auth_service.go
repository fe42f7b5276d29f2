package ports

import (
	"context"

	"github.com/forgeline/storefront-api/internal/core/domain"
)

// AuthService verifies credentials and applies password changes.
type AuthService interface {
	// Verify checks email/password against the stored identity. Read-only.
	// Fails with domain.ErrUserNotFound, domain.ErrInactiveUser or
	// domain.ErrBadPassword; callers must collapse all three into one
	// user-facing message.
	Verify(ctx context.Context, email, password string) (*domain.User, error)

	// ChangePassword validates and applies a password change for the given
	// identity and clears the temporary flag. currentPassword is ignored
	// when the identity is temporary, mandatory otherwise.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (*domain.User, error)
}
