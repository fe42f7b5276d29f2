package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/forgeline/storefront-api/internal/api/metrics"
	"github.com/forgeline/storefront-api/internal/api/middleware"
	"github.com/forgeline/storefront-api/internal/core/domain"
	"github.com/forgeline/storefront-api/internal/core/ports"
)

// AuthHandler owns the login, logout, session and change-password
// boundaries, including the session cookie lifecycle.
type AuthHandler struct {
	auth          ports.AuthService
	sessions      ports.SessionIssuer
	throttle      ports.LoginThrottle
	audit         ports.AuthEventSink
	sessionTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionIssuer, throttle ports.LoginThrottle, audit ports.AuthEventSink, sessionTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		auth:          auth,
		sessions:      sessions,
		throttle:      throttle,
		audit:         audit,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required"`
}

type sessionResponse struct {
	User *domain.User `json:"user"`
}

// Login authenticates a user and issues the session cookie.
//
// The response never distinguishes "unknown user" from "wrong password" or
// "inactive account"; the precise cause goes to the audit trail only.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	email := domain.NormalizeEmail(req.Email)

	if h.throttle != nil {
		blocked, err := h.throttle.TooMany(ctx, email)
		if err == nil && blocked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			h.audit.Record(domain.AuthEvent{
				Kind:       domain.AuthEventLoginThrottled,
				Subject:    email,
				RemoteAddr: c.RealIP(),
			})
			return domain.ErrTooManyAttempts
		}
	}

	user, err := h.auth.Verify(ctx, email, req.Password)
	if err != nil {
		if h.throttle != nil && isCredentialFailure(err) {
			_ = h.throttle.RecordFailure(ctx, email)
		}
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		h.audit.Record(domain.AuthEvent{
			Kind:       domain.AuthEventLoginFailed,
			Subject:    email,
			Reason:     failureReason(err),
			RemoteAddr: c.RealIP(),
		})
		return err
	}

	token, err := h.sessions.Mint(user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	if h.throttle != nil {
		_ = h.throttle.Clear(ctx, email)
	}
	h.setSessionCookie(c, token)

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	metrics.SessionsIssuedTotal.WithLabelValues("login").Inc()
	h.audit.Record(domain.AuthEvent{
		Kind:       domain.AuthEventLoginOK,
		Subject:    user.ID,
		RemoteAddr: c.RealIP(),
	})

	return c.JSON(http.StatusOK, sessionResponse{User: user})
}

// Logout expires the session cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if claims, ok := middleware.ClaimsFrom(c); ok {
		h.audit.Record(domain.AuthEvent{
			Kind:       domain.AuthEventLogout,
			Subject:    claims.SubjectID,
			RemoteAddr: c.RealIP(),
		})
	}
	h.clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// Session returns the claims of the current session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  ports.SessionClaims
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claims)
}

// Refresh re-derives the session claims from the persisted identity and
// re-issues the cookie.
//
// @Summary      Refresh session claims
// @Tags         auth
// @Produce      json
// @Success      200  {object}  ports.SessionClaims
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	token, claims, err := h.sessions.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			h.clearSessionCookie(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		return err
	}

	h.setSessionCookie(c, token)
	metrics.SessionsIssuedTotal.WithLabelValues("refresh").Inc()
	return c.JSON(http.StatusOK, claims)
}

// ChangePassword applies a password change for the current session and
// refreshes the cookie so the cleared temporary flag is visible on the very
// next request.
//
// Unlike login, each failure mode gets its own message: the caller is
// already authenticated, so enumeration is not a concern here.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Password change"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.ChangePassword(c.Request().Context(), claims.SubjectID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		metrics.PasswordChangesTotal.WithLabelValues(changeResult(err)).Inc()
		return err
	}

	// Claim refresh: re-mint so the next guard evaluation sees
	// is_temporary=false without a re-login.
	token, err := h.sessions.Mint(user)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, token)

	metrics.PasswordChangesTotal.WithLabelValues("ok").Inc()
	metrics.SessionsIssuedTotal.WithLabelValues("refresh").Inc()
	h.audit.Record(domain.AuthEvent{
		Kind:       domain.AuthEventPasswordChange,
		Subject:    user.ID,
		RemoteAddr: c.RealIP(),
	})

	return c.JSON(http.StatusOK, map[string]string{"status": "password changed"})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL / time.Second),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func isCredentialFailure(err error) bool {
	return errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrInactiveUser) ||
		errors.Is(err, domain.ErrBadPassword)
}

// failureReason maps a verification error to the audit reason. Never sent to
// the client.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInactiveUser):
		return "inactive"
	case errors.Is(err, domain.ErrBadPassword):
		return "bad_password"
	default:
		return "error"
	}
}

func loginResult(err error) string {
	if isCredentialFailure(err) {
		return "invalid"
	}
	return "error"
}

func changeResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrPasswordPolicy):
		return "policy_violation"
	case errors.Is(err, domain.ErrMissingCurrentPassword):
		return "missing_current"
	case errors.Is(err, domain.ErrIncorrectCurrentPassword):
		return "incorrect_current"
	default:
		return "error"
	}
}
