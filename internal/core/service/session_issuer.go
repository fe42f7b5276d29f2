package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/forgeline/storefront-api/internal/core/domain"
	"github.com/forgeline/storefront-api/internal/core/ports"
)

// DefaultSessionTTL is the fixed, non-sliding session lifetime.
const DefaultSessionTTL = 4 * time.Hour

// ErrNoSigningSecret is returned at construction when no secret is
// configured. Token operations additionally fail closed at runtime: an
// issuer without a secret never considers any token valid.
var ErrNoSigningSecret = errors.New("session signing secret is not configured")

// SessionIssuer mints and reads HS256 session tokens.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
	users  ports.UserRepository
	log    zerolog.Logger
}

func NewSessionIssuer(secret string, ttl time.Duration, users ports.UserRepository, log zerolog.Logger) (*SessionIssuer, error) {
	if secret == "" {
		return nil, ErrNoSigningSecret
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionIssuer{secret: []byte(secret), ttl: ttl, users: users, log: log}, nil
}

type sessionTokenClaims struct {
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	Role        string `json:"role"`
	Temporary   bool   `json:"temp"`
	CompanyName string `json:"company_name,omitempty"`
	GSTNo       string `json:"gst_no,omitempty"`
	jwt.RegisteredClaims
}

// Mint signs a fresh token carrying the identity's current claims, expiring
// a fixed TTL after issuance.
func (s *SessionIssuer) Mint(user *domain.User) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNoSigningSecret
	}

	now := time.Now().UTC()
	claims := sessionTokenClaims{
		Email:       user.Email,
		Name:        user.Name,
		Role:        string(user.Role),
		Temporary:   user.IsTemporary,
		CompanyName: user.CompanyName,
		GSTNo:       user.GSTNo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Read validates a token and returns its claims. Bad signature, wrong
// algorithm, expiry and malformed claims are all domain.ErrNoSession; the
// cause is logged at debug level only.
func (s *SessionIssuer) Read(token string) (*ports.SessionClaims, error) {
	if len(s.secret) == 0 {
		return nil, domain.ErrNoSession
	}

	claims := &sessionTokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		s.log.Debug().Err(err).Msg("session token rejected")
		return nil, domain.ErrNoSession
	}

	role := domain.Role(claims.Role)
	if claims.Subject == "" || !role.Valid() {
		s.log.Debug().Msg("session token has malformed claims")
		return nil, domain.ErrNoSession
	}

	out := &ports.SessionClaims{
		SubjectID:   claims.Subject,
		Email:       claims.Email,
		Name:        claims.Name,
		Role:        role,
		IsTemporary: claims.Temporary,
		CompanyName: claims.CompanyName,
		GSTNo:       claims.GSTNo,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// Refresh re-derives claims from the latest persisted identity and re-signs.
// A deleted or deactivated identity cannot refresh.
func (s *SessionIssuer) Refresh(ctx context.Context, token string) (string, *ports.SessionClaims, error) {
	claims, err := s.Read(token)
	if err != nil {
		return "", nil, err
	}

	user, err := s.users.FindByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrNoSession
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, domain.ErrNoSession
	}

	fresh, err := s.Mint(user)
	if err != nil {
		return "", nil, err
	}
	refreshed, err := s.Read(fresh)
	if err != nil {
		return "", nil, err
	}
	return fresh, refreshed, nil
}
