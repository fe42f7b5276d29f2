package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgeline/storefront-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == domain.NormalizeEmail(email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	normalized := domain.NormalizeEmail(user.Email)
	for _, u := range r.users {
		if u.Email == normalized {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = "u" + strconv.Itoa(r.nextID)
	copy.Email = normalized
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string, temporary bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.IsTemporary = temporary
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password string, role domain.Role, active, temporary bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
		IsTemporary:  temporary,
		CompanyName:  "Acme Traders",
		GSTNo:        "27AAAAA0000A1Z5",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	// Create forces defaults per stub; restore the flags under test.
	stored := repo.users[user.ID]
	stored.IsActive = active
	stored.IsTemporary = temporary
	return cloneUser(stored)
}

func TestAuthService_Verify_Success(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "buyer@acme.com", "s3cret", domain.RoleCustomer, true, false)
	svc := NewAuthService(repo, zerolog.Nop())

	user, err := svc.Verify(context.Background(), "buyer@acme.com", "s3cret")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Verify_CaseInsensitiveEmail(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "Buyer@Acme.com", "s3cret", domain.RoleCustomer, true, false)
	svc := NewAuthService(repo, zerolog.Nop())

	for _, email := range []string{"buyer@acme.com", "BUYER@ACME.COM", "Buyer@Acme.com"} {
		if _, err := svc.Verify(context.Background(), email, "s3cret"); err != nil {
			t.Fatalf("Verify(%q) returned error: %v", email, err)
		}
	}
}

func TestAuthService_Verify_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, zerolog.Nop())

	if _, err := svc.Verify(context.Background(), "ghost@acme.com", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Verify_InactiveNeverAuthenticates(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "gone@acme.com", "correct", domain.RoleCustomer, false, false)
	svc := NewAuthService(repo, zerolog.Nop())

	if _, err := svc.Verify(context.Background(), "gone@acme.com", "correct"); !errors.Is(err, domain.ErrInactiveUser) {
		t.Fatalf("expected ErrInactiveUser, got %v", err)
	}
}

func TestAuthService_Verify_BadPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "buyer@acme.com", "goodpass", domain.RoleCustomer, true, false)
	svc := NewAuthService(repo, zerolog.Nop())

	if _, err := svc.Verify(context.Background(), "buyer@acme.com", "badpass"); !errors.Is(err, domain.ErrBadPassword) {
		t.Fatalf("expected ErrBadPassword, got %v", err)
	}
}

func TestAuthService_ChangePassword_TemporarySkipsCurrent(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(t, repo, "new@acme.com", "temp-pass", domain.RoleCustomer, true, true)
	svc := NewAuthService(repo, zerolog.Nop())

	updated, err := svc.ChangePassword(context.Background(), user.ID, "", "fresh-pass")
	if err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if updated.IsTemporary {
		t.Fatalf("expected temporary flag cleared")
	}

	// Round trip: new password verifies, old one no longer does.
	if _, err := svc.Verify(context.Background(), "new@acme.com", "fresh-pass"); err != nil {
		t.Fatalf("new password does not verify: %v", err)
	}
	if _, err := svc.Verify(context.Background(), "new@acme.com", "temp-pass"); !errors.Is(err, domain.ErrBadPassword) {
		t.Fatalf("old password still verifies, got %v", err)
	}
}

func TestAuthService_ChangePassword_MissingCurrent(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(t, repo, "buyer@acme.com", "oldpass", domain.RoleCustomer, true, false)
	svc := NewAuthService(repo, zerolog.Nop())

	if _, err := svc.ChangePassword(context.Background(), user.ID, "", "newpass"); !errors.Is(err, domain.ErrMissingCurrentPassword) {
		t.Fatalf("expected ErrMissingCurrentPassword, got %v", err)
	}
}

func TestAuthService_ChangePassword_IncorrectCurrent(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(t, repo, "buyer@acme.com", "oldpass", domain.RoleCustomer, true, false)
	svc := NewAuthService(repo, zerolog.Nop())

	if _, err := svc.ChangePassword(context.Background(), user.ID, "wrong", "newpass"); !errors.Is(err, domain.ErrIncorrectCurrentPassword) {
		t.Fatalf("expected ErrIncorrectCurrentPassword, got %v", err)
	}
}

func TestAuthService_ChangePassword_PolicyViolation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, zerolog.Nop())

	// Too short fails regardless of temporary status, before any lookup.
	perm := seedUser(t, repo, "perm@acme.com", "oldpass", domain.RoleCustomer, true, false)
	temp := seedUser(t, repo, "temp@acme.com", "oldpass", domain.RoleCustomer, true, true)

	if _, err := svc.ChangePassword(context.Background(), perm.ID, "oldpass", "short"); !errors.Is(err, domain.ErrPasswordPolicy) {
		t.Fatalf("expected ErrPasswordPolicy, got %v", err)
	}
	if _, err := svc.ChangePassword(context.Background(), temp.ID, "", "short"); !errors.Is(err, domain.ErrPasswordPolicy) {
		t.Fatalf("expected ErrPasswordPolicy for temporary identity, got %v", err)
	}
}

func TestAuthService_ChangePassword_WithCorrectCurrent(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(t, repo, "buyer@acme.com", "oldpass", domain.RoleCustomer, true, false)
	svc := NewAuthService(repo, zerolog.Nop())

	if _, err := svc.ChangePassword(context.Background(), user.ID, "oldpass", "brand-new"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if _, err := svc.Verify(context.Background(), "buyer@acme.com", "brand-new"); err != nil {
		t.Fatalf("new password does not verify: %v", err)
	}
}
