package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgeline/storefront-api/internal/core/domain"
	"github.com/forgeline/storefront-api/internal/core/ports"
)

// AuthService implements credential verification and password changes.
type AuthService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, log: log}
}

// Verify checks email/password against the stored identity. The failure
// cause is logged with context but callers must never surface it verbatim:
// NotFound, Inactive and BadPassword all read "invalid credentials" on the
// wire.
func (s *AuthService) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrBadPassword
	}

	normalized := domain.NormalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("email", normalized).Msg("verify: unknown user")
		}
		return nil, err
	}

	if !user.IsActive {
		s.log.Warn().Str("user_id", user.ID).Msg("verify: inactive user")
		return nil, domain.ErrInactiveUser
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Warn().Str("user_id", user.ID).Msg("verify: password mismatch")
		return nil, domain.ErrBadPassword
	}

	return user, nil
}

// ChangePassword validates and applies a password change, clearing the
// temporary flag. A temporary password is a one-time credential whose only
// purpose is to reach this call, so the current-password check is skipped
// for temporary identities. Plaintext passwords are never logged.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (*domain.User, error) {
	if len(newPassword) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordPolicy
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsTemporary {
		if currentPassword == "" {
			return nil, domain.ErrMissingCurrentPassword
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
			return nil, domain.ErrIncorrectCurrentPassword
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash), false); err != nil {
		return nil, err
	}

	user.PasswordHash = string(hash)
	user.IsTemporary = false
	user.UpdatedAt = time.Now().UTC()

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return user, nil
}
