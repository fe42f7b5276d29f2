package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forgeline/storefront-api/internal/core/ports"
)

// PageHandler serves the data behind navigable routes. These are the thin
// endpoints the route guard fronts: the interesting part is reaching them at
// all, not what they return.
type PageHandler struct {
	catalog ports.CatalogService
	orders  ports.OrderService
	quotes  ports.QuoteService
	users   ports.UserService
}

func NewPageHandler(catalog ports.CatalogService, orders ports.OrderService, quotes ports.QuoteService, users ports.UserService) *PageHandler {
	return &PageHandler{catalog: catalog, orders: orders, quotes: quotes, users: users}
}

type pageResponse struct {
	Page string `json:"page"`
	Data any    `json:"data,omitempty"`
}

func (h *PageHandler) Home(c echo.Context) error {
	services, err := h.catalog.ListServices(c.Request().Context(), false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "home", Data: map[string]any{"services": services}})
}

func (h *PageHandler) Products(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context(), false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "products", Data: products})
}

func (h *PageHandler) About(c echo.Context) error {
	staff, err := h.catalog.ListStaff(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "about", Data: map[string]any{"staff": staff}})
}

func (h *PageHandler) Contact(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "contact"})
}

// Quotation serves the public quotation form: the published catalog to pick
// lines from.
func (h *PageHandler) Quotation(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context(), false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "quotation", Data: products})
}

// Login echoes the callback target so the client can return the user to
// where the guard intercepted them.
func (h *PageHandler) Login(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{
		Page: "login",
		Data: map[string]string{"callback_url": c.QueryParam("callbackUrl")},
	})
}

func (h *PageHandler) ChangePassword(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "change-password"})
}

func (h *PageHandler) Account(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "account", Data: claims})
}

func (h *PageHandler) AccountOrders(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	orders, err := h.orders.ListByUser(c.Request().Context(), claims.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "account/orders", Data: orders})
}

func (h *PageHandler) AccountQuotes(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	quotes, err := h.quotes.ListByUser(c.Request().Context(), claims.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "account/quotes", Data: quotes})
}

// AdminDashboard summarises open work for the console landing page.
func (h *PageHandler) AdminDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	orders, err := h.orders.ListAll(ctx)
	if err != nil {
		return err
	}
	quotes, err := h.quotes.ListAll(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "admin", Data: map[string]any{
		"orders": len(orders),
		"quotes": len(quotes),
	}})
}

func (h *PageHandler) AdminUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "admin/users", Data: users})
}

func (h *PageHandler) AdminOrders(c echo.Context) error {
	orders, err := h.orders.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "admin/orders", Data: orders})
}

func (h *PageHandler) AdminQuotes(c echo.Context) error {
	quotes, err := h.quotes.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "admin/quotes", Data: quotes})
}

// Studio serves the full catalog, unpublished entries included, for the
// content studio.
func (h *PageHandler) Studio(c echo.Context) error {
	ctx := c.Request().Context()
	products, err := h.catalog.ListProducts(ctx, true)
	if err != nil {
		return err
	}
	services, err := h.catalog.ListServices(ctx, true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "studio", Data: map[string]any{
		"products": products,
		"services": services,
	}})
}
