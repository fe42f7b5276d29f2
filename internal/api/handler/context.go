package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forgeline/storefront-api/internal/api/middleware"
	"github.com/forgeline/storefront-api/internal/core/ports"
)

// ctxClaims extracts the session claims injected by the session middleware
// and fast-fails with 401 when they are absent; presence proves the
// middleware ran.
func ctxClaims(c echo.Context) (*ports.SessionClaims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
