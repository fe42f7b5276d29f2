package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/forgeline/storefront-api/internal/core/domain"
	"github.com/forgeline/storefront-api/internal/core/ports"
)

// OrderService places orders and applies admin status transitions.
type OrderService struct {
	orders  ports.OrderRepository
	catalog ports.CatalogRepository
	log     zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, catalog ports.CatalogRepository, log zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, catalog: catalog, log: log}
}

// Create places an order, pricing each line from the current catalog.
func (s *OrderService) Create(ctx context.Context, userID string, items []ports.OrderItemInput, notes string) (*domain.Order, error) {
	if userID == "" || len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	lines := make([]domain.OrderItem, 0, len(items))
	total := 0.0
	for _, item := range items {
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
		total += product.Price * float64(item.Quantity)
	}

	now := time.Now().UTC()
	order, err := s.orders.Create(ctx, &domain.Order{
		UserID:    userID,
		Items:     lines,
		Total:     total,
		Status:    domain.OrderPlaced,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("order_id", order.ID).Str("user_id", userID).Msg("order placed")
	return order, nil
}

// Get returns an order; non-admin callers may only read their own.
func (s *OrderService) Get(ctx context.Context, id, callerID string, callerRole domain.Role) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch callerRole {
	case domain.RoleAdmin:
	case domain.RoleCustomer:
		if order.UserID != callerID {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}

// UpdateStatus applies an admin status transition, enforcing the order state
// machine.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, next domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}
	if err := s.orders.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	order.Status = next
	order.UpdatedAt = time.Now().UTC()
	s.log.Info().Str("order_id", id).Str("status", string(next)).Msg("order status updated")
	return order, nil
}
