package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forgeline/storefront-api/internal/core/ports"
)

// CatalogHandler exposes the admin catalog CRUD. Public reads go through the
// page handler instead.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type productRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" validate:"gte=0"`
	Unit        string  `json:"unit"`
	ImageURL    string  `json:"image_url"`
	IsPublished bool    `json:"is_published"`
}

type serviceRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published"`
}

type staffRequest struct {
	Name     string `json:"name" validate:"required"`
	Title    string `json:"title"`
	PhotoURL string `json:"photo_url"`
}

// ListProducts returns the full catalog, unpublished entries included.
//
// @Summary      List products (admin)
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /api/admin/catalog/products [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context(), true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// CreateProduct adds a catalog product.
//
// @Summary      Create product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Router       /api/admin/catalog/products [post]
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalog.CreateProduct(c.Request().Context(), ports.ProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct replaces the editable fields of a product.
//
// @Summary      Update product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Product ID"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  domain.Product
// @Router       /api/admin/catalog/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalog.UpdateProduct(c.Request().Context(), c.Param("id"), ports.ProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product.
//
// @Summary      Delete product
// @Tags         catalog
// @Param        id  path  string  true  "Product ID"
// @Success      204
// @Router       /api/admin/catalog/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	if err := h.catalog.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListServices returns all service offerings.
//
// @Summary      List services (admin)
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.ServiceOffering
// @Router       /api/admin/catalog/services [get]
func (h *CatalogHandler) ListServices(c echo.Context) error {
	services, err := h.catalog.ListServices(c.Request().Context(), true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services)
}

// CreateService adds a service offering.
//
// @Summary      Create service
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body      serviceRequest  true  "Service"
// @Success      201   {object}  domain.ServiceOffering
// @Router       /api/admin/catalog/services [post]
func (h *CatalogHandler) CreateService(c echo.Context) error {
	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	service, err := h.catalog.CreateService(c.Request().Context(), ports.ServiceInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, service)
}

// DeleteService removes a service offering.
//
// @Summary      Delete service
// @Tags         catalog
// @Param        id  path  string  true  "Service ID"
// @Success      204
// @Router       /api/admin/catalog/services/{id} [delete]
func (h *CatalogHandler) DeleteService(c echo.Context) error {
	if err := h.catalog.DeleteService(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListStaff returns all staff entries.
//
// @Summary      List staff (admin)
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.StaffMember
// @Router       /api/admin/catalog/staff [get]
func (h *CatalogHandler) ListStaff(c echo.Context) error {
	staff, err := h.catalog.ListStaff(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, staff)
}

// CreateStaff adds a staff entry.
//
// @Summary      Create staff entry
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body      staffRequest  true  "Staff member"
// @Success      201   {object}  domain.StaffMember
// @Router       /api/admin/catalog/staff [post]
func (h *CatalogHandler) CreateStaff(c echo.Context) error {
	var req staffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	member, err := h.catalog.CreateStaff(c.Request().Context(), ports.StaffInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, member)
}

// DeleteStaff removes a staff entry.
//
// @Summary      Delete staff entry
// @Tags         catalog
// @Param        id  path  string  true  "Staff ID"
// @Success      204
// @Router       /api/admin/catalog/staff/{id} [delete]
func (h *CatalogHandler) DeleteStaff(c echo.Context) error {
	if err := h.catalog.DeleteStaff(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
