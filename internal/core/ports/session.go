package ports

import (
	"context"
	"time"

	"github.com/forgeline/storefront-api/internal/core/domain"
)

// SessionClaims is the decoded content of a session token.
type SessionClaims struct {
	SubjectID   string
	Email       string
	Name        string
	Role        domain.Role
	IsTemporary bool
	CompanyName string
	GSTNo       string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// SessionIssuer mints and reads signed, time-bounded session tokens.
type SessionIssuer interface {
	// Mint signs a fresh token carrying the identity's current claims.
	Mint(user *domain.User) (string, error)

	// Read validates a token and returns its claims. Any failure (bad
	// signature, expiry, malformed claims) is domain.ErrNoSession.
	Read(token string) (*SessionClaims, error)

	// Refresh re-derives claims from the latest persisted identity and
	// re-signs. This is how a password change clears the temporary flag in
	// the live session without a full re-login.
	Refresh(ctx context.Context, token string) (string, *SessionClaims, error)
}
