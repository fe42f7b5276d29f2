package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/forgeline/storefront-api/internal/core/domain"
)

const testSecret = "unit-test-signing-secret"

func newTestIssuer(t *testing.T, repo *stubUserRepo, ttl time.Duration) *SessionIssuer {
	t.Helper()
	issuer, err := NewSessionIssuer(testSecret, ttl, repo, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSessionIssuer: %v", err)
	}
	return issuer
}

func TestSessionIssuer_EmptySecretRefused(t *testing.T) {
	if _, err := NewSessionIssuer("", time.Hour, newStubUserRepo(), zerolog.Nop()); !errors.Is(err, ErrNoSigningSecret) {
		t.Fatalf("expected ErrNoSigningSecret, got %v", err)
	}
}

func TestSessionIssuer_MintReadRoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(t, repo, "buyer@acme.com", "s3cret", domain.RoleCustomer, true, true)
	issuer := newTestIssuer(t, repo, 0)

	token, err := issuer.Mint(user)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	claims, err := issuer.Read(token)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if claims.SubjectID != user.ID {
		t.Errorf("subject = %q, want %q", claims.SubjectID, user.ID)
	}
	if claims.Email != user.Email {
		t.Errorf("email = %q, want %q", claims.Email, user.Email)
	}
	if claims.Role != domain.RoleCustomer {
		t.Errorf("role = %q, want %q", claims.Role, domain.RoleCustomer)
	}
	if !claims.IsTemporary {
		t.Errorf("expected temporary flag set")
	}
	if claims.CompanyName != user.CompanyName || claims.GSTNo != user.GSTNo {
		t.Errorf("company fields lost: %q / %q", claims.CompanyName, claims.GSTNo)
	}

	wantExpiry := claims.IssuedAt.Add(DefaultSessionTTL)
	if diff := claims.ExpiresAt.Sub(wantExpiry); diff < -time.Second || diff > time.Second {
		t.Errorf("expiry = %v, want issued+%v", claims.ExpiresAt, DefaultSessionTTL)
	}
}

func TestSessionIssuer_RejectsWrongSecret(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(t, repo, "buyer@acme.com", "s3cret", domain.RoleCustomer, true, false)
	issuer := newTestIssuer(t, repo, time.Hour)

	other, err := NewSessionIssuer("a-different-secret", time.Hour, repo, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSessionIssuer: %v", err)
	}

	token, err := other.Mint(user)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if _, err := issuer.Read(token); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for foreign signature, got %v", err)
	}
}

func TestSessionIssuer_RejectsExpired(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(t, repo, "buyer@acme.com", "s3cret", domain.RoleCustomer, true, false)
	issuer := newTestIssuer(t, repo, time.Nanosecond)

	token, err := issuer.Mint(user)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := issuer.Read(token); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for expired token, got %v", err)
	}
}

func TestSessionIssuer_RejectsGarbage(t *testing.T) {
	issuer := newTestIssuer(t, newStubUserRepo(), time.Hour)

	for _, token := range []string{"", "not-a-token", "aaaa.bbbb.cccc"} {
		if _, err := issuer.Read(token); !errors.Is(err, domain.ErrNoSession) {
			t.Fatalf("Read(%q): expected ErrNoSession, got %v", token, err)
		}
	}
}

func TestSessionIssuer_RejectsMalformedClaims(t *testing.T) {
	repo := newStubUserRepo()
	issuer := newTestIssuer(t, repo, time.Hour)

	// A structurally valid token with a role outside the known set must not
	// be treated as a session.
	token, err := issuer.Mint(&domain.User{
		ID:    "u1",
		Email: "buyer@acme.com",
		Role:  domain.Role("SUPERUSER"),
	})
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if _, err := issuer.Read(token); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for unknown role, got %v", err)
	}

	token, err = issuer.Mint(&domain.User{Email: "buyer@acme.com", Role: domain.RoleCustomer})
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if _, err := issuer.Read(token); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for empty subject, got %v", err)
	}
}

func TestSessionIssuer_RefreshReflectsUpdatedIdentity(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(t, repo, "new@acme.com", "temp-pass", domain.RoleCustomer, true, true)
	issuer := newTestIssuer(t, repo, time.Hour)

	token, err := issuer.Mint(user)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	// Password change clears the temporary flag in storage; the old token
	// still carries the stale claim until refreshed.
	if err := repo.UpdatePassword(context.Background(), user.ID, "new-hash", false); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	fresh, claims, err := issuer.Refresh(context.Background(), token)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if fresh == "" || fresh == token {
		t.Fatalf("expected a newly signed token")
	}
	if claims.IsTemporary {
		t.Fatalf("refreshed claims still temporary")
	}
}

func TestSessionIssuer_RefreshRejectsDeactivated(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(t, repo, "gone@acme.com", "s3cret", domain.RoleCustomer, true, false)
	issuer := newTestIssuer(t, repo, time.Hour)

	token, err := issuer.Mint(user)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	stored := repo.users[user.ID]
	stored.IsActive = false
	if _, _, err := issuer.Refresh(context.Background(), token); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for deactivated identity, got %v", err)
	}

	if err := repo.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, err := issuer.Refresh(context.Background(), token); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for deleted identity, got %v", err)
	}
}
