package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/forgeline/storefront-api/internal/core/domain"
	"github.com/forgeline/storefront-api/internal/core/ports"
)

// QuoteService handles quotation requests from the public quotation page and
// the admin review flow.
type QuoteService struct {
	quotes  ports.QuoteRepository
	catalog ports.CatalogRepository
	log     zerolog.Logger
}

func NewQuoteService(quotes ports.QuoteRepository, catalog ports.CatalogRepository, log zerolog.Logger) *QuoteService {
	return &QuoteService{quotes: quotes, catalog: catalog, log: log}
}

func (s *QuoteService) Submit(ctx context.Context, input ports.QuoteInput) (*domain.Quote, error) {
	if input.ContactName == "" || input.Email == "" || len(input.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	lines := make([]domain.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := s.catalog.FindProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
	}

	now := time.Now().UTC()
	quote, err := s.quotes.Create(ctx, &domain.Quote{
		UserID:      input.UserID,
		ContactName: input.ContactName,
		Email:       domain.NormalizeEmail(input.Email),
		Phone:       input.Phone,
		CompanyName: input.CompanyName,
		Items:       lines,
		Message:     input.Message,
		Status:      domain.QuoteSubmitted,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("quote_id", quote.ID).Msg("quote submitted")
	return quote, nil
}

func (s *QuoteService) ListByUser(ctx context.Context, userID string) ([]*domain.Quote, error) {
	return s.quotes.ListByUser(ctx, userID)
}

func (s *QuoteService) ListAll(ctx context.Context) ([]*domain.Quote, error) {
	return s.quotes.List(ctx)
}

// UpdateStatus applies an admin status transition, enforcing the quote state
// machine. quotedPrice is only persisted on the move to priced.
func (s *QuoteService) UpdateStatus(ctx context.Context, id string, next domain.QuoteStatus, quotedPrice float64) (*domain.Quote, error) {
	quote, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quote.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	price := quote.QuotedPrice
	if next == domain.QuotePriced {
		price = quotedPrice
	}
	if err := s.quotes.UpdateStatus(ctx, id, next, price); err != nil {
		return nil, err
	}
	quote.Status = next
	quote.QuotedPrice = price
	quote.UpdatedAt = time.Now().UTC()
	s.log.Info().Str("quote_id", id).Str("status", string(next)).Msg("quote status updated")
	return quote, nil
}
