package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forgeline/storefront-api/internal/api/middleware"
	"github.com/forgeline/storefront-api/internal/core/domain"
	"github.com/forgeline/storefront-api/internal/core/ports"
)

// QuoteHandler exposes quotation submission and the admin review flow.
type QuoteHandler struct {
	quotes ports.QuoteService
}

func NewQuoteHandler(quotes ports.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

type quoteRequest struct {
	ContactName string             `json:"contact_name" validate:"required"`
	Email       string             `json:"email" validate:"required,email"`
	Phone       string             `json:"phone"`
	CompanyName string             `json:"company_name"`
	Items       []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	Message     string             `json:"message"`
}

type quoteStatusRequest struct {
	Status      string  `json:"status" validate:"required,oneof=reviewed priced accepted rejected"`
	QuotedPrice float64 `json:"quoted_price" validate:"gte=0"`
}

// Submit accepts a quotation request. The endpoint is open to anonymous
// visitors; when a session is present the quote is tied to the account.
//
// @Summary      Submit quotation request
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        body  body      quoteRequest  true  "Quotation request"
// @Success      201   {object}  domain.Quote
// @Failure      400   {object}  map[string]string
// @Router       /api/quotes [post]
func (h *QuoteHandler) Submit(c echo.Context) error {
	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.QuoteInput{
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
		Message:     req.Message,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, ports.OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	if claims, ok := middleware.ClaimsFrom(c); ok {
		input.UserID = claims.SubjectID
	}

	quote, err := h.quotes.Submit(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, quote)
}

// ListOwn returns the current customer's quotes.
//
// @Summary      List own quotes
// @Tags         quotes
// @Produce      json
// @Success      200  {array}  domain.Quote
// @Router       /api/quotes [get]
func (h *QuoteHandler) ListOwn(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	quotes, err := h.quotes.ListByUser(c.Request().Context(), claims.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quotes)
}

// ListAll returns every quote for the admin console.
//
// @Summary      List all quotes (admin)
// @Tags         quotes
// @Produce      json
// @Success      200  {array}  domain.Quote
// @Router       /api/admin/quotes [get]
func (h *QuoteHandler) ListAll(c echo.Context) error {
	quotes, err := h.quotes.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quotes)
}

// UpdateStatus applies an admin status transition.
//
// @Summary      Update quote status (admin)
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Quote ID"
// @Param        body  body      quoteStatusRequest  true  "Next status"
// @Success      200   {object}  domain.Quote
// @Failure      422   {object}  map[string]string
// @Router       /api/admin/quotes/{id}/status [patch]
func (h *QuoteHandler) UpdateStatus(c echo.Context) error {
	var req quoteStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quote, err := h.quotes.UpdateStatus(c.Request().Context(), c.Param("id"), domain.QuoteStatus(req.Status), req.QuotedPrice)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quote)
}
