package ports

import (
	"context"

	"github.com/forgeline/storefront-api/internal/core/domain"
)

// AuthEventRepository persists auth audit events.
type AuthEventRepository interface {
	Insert(ctx context.Context, event domain.AuthEvent) error
}

// AuthEventSink accepts audit events without blocking the request path.
type AuthEventSink interface {
	Record(event domain.AuthEvent)
}

// LoginThrottle counts failed login attempts per subject within a rolling
// window.
type LoginThrottle interface {
	// TooMany reports whether the subject has exceeded the failure budget.
	TooMany(ctx context.Context, subject string) (bool, error)
	// RecordFailure bumps the subject's failure counter.
	RecordFailure(ctx context.Context, subject string) error
	// Clear resets the counter after a successful login.
	Clear(ctx context.Context, subject string) error
}
