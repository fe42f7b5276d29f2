package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/forgeline/storefront-api/internal/core/domain"
	"github.com/forgeline/storefront-api/internal/core/ports"
)

// RequireSession protects API routes. It accepts the session cookie or a
// bearer token and injects the claims into the context; without a valid
// session the request is rejected with 401 JSON rather than a redirect.
func RequireSession(issuer ports.SessionIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			claims, err := issuer.Read(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// OptionalSession injects claims when a valid session is present but never
// rejects. Used on endpoints that serve both visitors and customers, such as
// quotation submission.
func OptionalSession(issuer ports.SessionIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := sessionToken(c); token != "" {
				if claims, err := issuer.Read(token); err == nil {
					c.Set(claimsContextKey, claims)
				}
			}
			return next(c)
		}
	}
}

// RejectTemporary blocks sessions still carrying a temporary password. The
// auth endpoints themselves must not use it, or the holder could never
// complete the forced password change.
func RejectTemporary() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if claims.IsTemporary {
				return echo.NewHTTPError(http.StatusForbidden, "password change required")
			}
			return next(c)
		}
	}
}

// RequireRole enforces role-based access on API routes.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if _, ok := allowed[claims.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// sessionToken pulls the token from the session cookie, falling back to an
// Authorization bearer header for non-browser clients.
func sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
