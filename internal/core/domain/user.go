package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the closed set of actor roles. There is no hierarchy: a route is
// either admin-only or it is not.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer:
		return true
	}
	return false
}

// Credential verification failures. All three collapse to a single generic
// message at the login boundary; they stay distinct for server-side logs.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrInactiveUser = errors.New("user is inactive")
	ErrBadPassword  = errors.New("password mismatch")
)

// Password change failures. Each is surfaced with its own message since the
// caller is already authenticated.
var (
	ErrMissingCurrentPassword   = errors.New("current password is required")
	ErrIncorrectCurrentPassword = errors.New("current password is incorrect")
	ErrPasswordPolicy           = errors.New("password must be at least 6 characters")
)

var (
	ErrUserExists      = errors.New("user already exists")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidInput    = errors.New("invalid input")
	ErrTooManyAttempts = errors.New("too many failed login attempts")
)

// ErrNoSession covers every token failure: missing, malformed, bad signature,
// expired. The route guard treats them all as "not logged in".
var ErrNoSession = errors.New("no session")

// MinPasswordLength is the only password policy the storefront enforces.
const MinPasswordLength = 6

// User is a stored identity with credentials and role.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	IsTemporary  bool      `json:"is_temporary"`
	CompanyName  string    `json:"company_name,omitempty"`
	GSTNo        string    `json:"gst_no,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeEmail lowercases and trims an email. Every store lookup and every
// stored record goes through this, so two users can never differ only by case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
