package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forgeline/storefront-api/internal/core/domain"
	"github.com/forgeline/storefront-api/internal/core/ports"
)

// UserHandler exposes admin account management. Temporary passwords are
// returned in the creation/reset responses exactly once for out-of-band
// delivery and never appear anywhere else.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type createUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name"`
	Password    string `json:"password" validate:"omitempty,min=6"`
	Role        string `json:"role" validate:"required,oneof=ADMIN CUSTOMER"`
	CompanyName string `json:"company_name"`
	GSTNo       string `json:"gst_no"`
}

type updateUserRequest struct {
	Name        *string `json:"name"`
	Role        *string `json:"role" validate:"omitempty,oneof=ADMIN CUSTOMER"`
	IsActive    *bool   `json:"is_active"`
	CompanyName *string `json:"company_name"`
	GSTNo       *string `json:"gst_no"`
}

type userWithTempPassword struct {
	User              *domain.User `json:"user"`
	TemporaryPassword string       `json:"temporary_password"`
}

// Create issues a new account with a temporary password.
//
// @Summary      Create user (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "New account"
// @Success      201   {object}  userWithTempPassword
// @Failure      409   {object}  map[string]string
// @Router       /api/admin/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, tempPassword, err := h.users.Create(c.Request().Context(), ports.CreateUserInput{
		Email:       req.Email,
		Name:        req.Name,
		Password:    req.Password,
		Role:        domain.Role(req.Role),
		CompanyName: req.CompanyName,
		GSTNo:       req.GSTNo,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userWithTempPassword{User: user, TemporaryPassword: tempPassword})
}

// List returns every account.
//
// @Summary      List users (admin)
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /api/admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one account.
//
// @Summary      Get user (admin)
// @Tags         users
// @Produce      json
// @Param        id  path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return userError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Update edits profile fields, role or activation.
//
// @Summary      Update user (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateUserInput{
		Name:        req.Name,
		IsActive:    req.IsActive,
		CompanyName: req.CompanyName,
		GSTNo:       req.GSTNo,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}

	user, err := h.users.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return userError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ResetPassword issues a fresh temporary password for the account, forcing a
// change on the holder's next login.
//
// @Summary      Reset user password (admin)
// @Tags         users
// @Produce      json
// @Param        id  path      string  true  "User ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/users/{id}/reset-password [post]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	tempPassword, err := h.users.ResetPassword(c.Request().Context(), c.Param("id"))
	if err != nil {
		return userError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"temporary_password": tempPassword})
}

// Delete removes an account.
//
// @Summary      Delete user (admin)
// @Tags         users
// @Param        id  path  string  true  "User ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return userError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// userError keeps a missing account a plain 404 in the admin console. The
// central error handler maps ErrUserNotFound to the login boundary's generic
// 401, which would be misleading here.
func userError(err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return err
}
