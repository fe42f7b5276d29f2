package ports

import (
	"context"

	"github.com/forgeline/storefront-api/internal/core/domain"
)

// QuoteRepository persists quotation requests.
type QuoteRepository interface {
	Create(ctx context.Context, q *domain.Quote) (*domain.Quote, error)
	FindByID(ctx context.Context, id string) (*domain.Quote, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Quote, error)
	List(ctx context.Context) ([]*domain.Quote, error)
	UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus, quotedPrice float64) error
}
