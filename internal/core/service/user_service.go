package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgeline/storefront-api/internal/core/domain"
	"github.com/forgeline/storefront-api/internal/core/ports"
)

const tempPasswordLength = 12

// No ambiguous characters (0/O, 1/l) since temporary passwords are relayed
// out of band, often over the phone.
const tempPasswordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// UserService implements admin-facing account management. Accounts are
// always issued with a temporary password, which forces a password change
// before the new user reaches anything else.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, string, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" {
		return nil, "", domain.ErrInvalidInput
	}
	if !input.Role.Valid() {
		return nil, "", domain.ErrInvalidRole
	}

	password := input.Password
	if password == "" {
		generated, err := generateTempPassword()
		if err != nil {
			return nil, "", err
		}
		password = generated
	}
	if len(password) < domain.MinPasswordLength {
		return nil, "", domain.ErrPasswordPolicy
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         input.Name,
		PasswordHash: string(hash),
		Role:         input.Role,
		IsActive:     true,
		IsTemporary:  true,
		CompanyName:  input.CompanyName,
		GSTNo:        input.GSTNo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("account issued")
	return created, password, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, domain.ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.CompanyName != nil {
		user.CompanyName = *input.CompanyName
	}
	if input.GSTNo != nil {
		user.GSTNo = *input.GSTNo
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword issues a fresh temporary password and flags the account for
// a forced change. The plaintext is returned exactly once and never logged.
func (s *UserService) ResetPassword(ctx context.Context, id string) (string, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	password, err := generateTempPassword()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash), true); err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset to temporary")
	return password, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("account deleted")
	return nil
}

func generateTempPassword() (string, error) {
	buf := make([]byte, tempPasswordLength)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
