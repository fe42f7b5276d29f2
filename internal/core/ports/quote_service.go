package ports

import (
	"context"

	"github.com/forgeline/storefront-api/internal/core/domain"
)

// QuoteInput is a quotation request as submitted from the public quotation
// page. UserID is set by the caller when a session is present.
type QuoteInput struct {
	UserID      string
	ContactName string
	Email       string
	Phone       string
	CompanyName string
	Items       []OrderItemInput
	Message     string
}

// QuoteService manages quotation requests.
type QuoteService interface {
	Submit(ctx context.Context, input QuoteInput) (*domain.Quote, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Quote, error)
	ListAll(ctx context.Context) ([]*domain.Quote, error)
	// UpdateStatus applies an admin status transition, enforcing the quote
	// state machine. quotedPrice is recorded when moving to priced.
	UpdateStatus(ctx context.Context, id string, next domain.QuoteStatus, quotedPrice float64) (*domain.Quote, error)
}
