package ports

import (
	"context"

	"github.com/forgeline/storefront-api/internal/core/domain"
)

// OrderItemInput is a single requested line on a new order.
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// OrderService manages customer orders.
type OrderService interface {
	// Create places an order for the given customer, pricing each line from
	// the current catalog.
	Create(ctx context.Context, userID string, items []OrderItemInput, notes string) (*domain.Order, error)
	// Get returns an order; non-admin callers may only read their own.
	Get(ctx context.Context, id, callerID string, callerRole domain.Role) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	// UpdateStatus applies an admin status transition, enforcing the order
	// state machine.
	UpdateStatus(ctx context.Context, id string, next domain.OrderStatus) (*domain.Order, error)
}
