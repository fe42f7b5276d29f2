package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/forgeline/storefront-api/internal/api/metrics"
	"github.com/forgeline/storefront-api/internal/core/domain"
	"github.com/forgeline/storefront-api/internal/core/ports"
)

// claimsContextKey is where middleware stores the decoded session claims.
const claimsContextKey = "session_claims"

// ClaimsFrom returns the session claims injected by Guard or RequireSession.
func ClaimsFrom(c echo.Context) (*ports.SessionClaims, bool) {
	claims, ok := c.Get(claimsContextKey).(*ports.SessionClaims)
	return claims, ok && claims != nil
}

// Guard is the per-request access-control decision point for navigable
// routes. Rules are evaluated in strict order, first match wins:
//
//  1. public path            → allow
//  2. no valid session       → redirect to login with callback
//  3. temporary password set → redirect to the change-password page
//  4. admin path, non-admin  → redirect home (authenticated but unauthorized)
//  5. default                → allow
//
// Exempt paths (API, assets, operational endpoints) bypass the guard
// entirely. Any token failure is treated as "no session", never surfaced.
func Guard(issuer ports.SessionIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if IsExempt(path) {
				return next(c)
			}

			claims := readSessionCookie(c, issuer)
			if claims != nil {
				c.Set(claimsContextKey, claims)
			}

			if IsPublic(path) {
				metrics.GuardDecisionsTotal.WithLabelValues("allow_public").Inc()
				return next(c)
			}

			if claims == nil {
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_login").Inc()
				return c.Redirect(http.StatusFound, loginRedirectTarget(c))
			}

			if claims.IsTemporary && path != ChangePasswordPath {
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_change_password").Inc()
				return c.Redirect(http.StatusFound, ChangePasswordPath)
			}

			if IsAdminPath(path) && claims.Role != domain.RoleAdmin {
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_home").Inc()
				return c.Redirect(http.StatusFound, HomePath)
			}

			metrics.GuardDecisionsTotal.WithLabelValues("allow").Inc()
			return next(c)
		}
	}
}

// readSessionCookie extracts and validates the session token. Missing
// cookie, bad signature, expiry and malformed claims all come back nil.
func readSessionCookie(c echo.Context, issuer ports.SessionIssuer) *ports.SessionClaims {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := issuer.Read(cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}

// loginRedirectTarget preserves the intended destination, query included, as
// a callback parameter.
func loginRedirectTarget(c echo.Context) string {
	target := c.Request().URL.Path
	if q := c.Request().URL.RawQuery; q != "" {
		target += "?" + q
	}
	return LoginPath + "?callbackUrl=" + url.QueryEscape(target)
}
