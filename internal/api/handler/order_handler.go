package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forgeline/storefront-api/internal/core/domain"
	"github.com/forgeline/storefront-api/internal/core/ports"
)

// OrderHandler exposes customer order placement and the admin order console.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes string             `json:"notes"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed processing shipped delivered cancelled"`
}

// Create places an order for the current customer.
//
// @Summary      Place order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      createOrderRequest  true  "Order lines"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  map[string]string
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ports.OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.orders.Create(c.Request().Context(), claims.SubjectID, items, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

// ListOwn returns the current customer's orders.
//
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Success      200  {array}  domain.Order
// @Router       /api/orders [get]
func (h *OrderHandler) ListOwn(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	orders, err := h.orders.ListByUser(c.Request().Context(), claims.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Get returns one order; customers may only read their own.
//
// @Summary      Get order
// @Tags         orders
// @Produce      json
// @Param        id  path      string  true  "Order ID"
// @Success      200  {object}  domain.Order
// @Failure      403  {object}  map[string]string
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	order, err := h.orders.Get(c.Request().Context(), c.Param("id"), claims.SubjectID, claims.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// ListAll returns every order for the admin console.
//
// @Summary      List all orders (admin)
// @Tags         orders
// @Produce      json
// @Success      200  {array}  domain.Order
// @Router       /api/admin/orders [get]
func (h *OrderHandler) ListAll(c echo.Context) error {
	orders, err := h.orders.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus applies an admin status transition.
//
// @Summary      Update order status (admin)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Order ID"
// @Param        body  body      orderStatusRequest  true  "Next status"
// @Success      200   {object}  domain.Order
// @Failure      422   {object}  map[string]string
// @Router       /api/admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
