package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/forgeline/storefront-api/internal/api/middleware"
	"github.com/forgeline/storefront-api/internal/core/domain"
	"github.com/forgeline/storefront-api/internal/core/ports"
)

type stubAuthService struct {
	verifyFn func(ctx context.Context, email, password string) (*domain.User, error)
	changeFn func(ctx context.Context, userID, currentPassword, newPassword string) (*domain.User, error)
}

func (s *stubAuthService) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	return s.verifyFn(ctx, email, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (*domain.User, error) {
	return s.changeFn(ctx, userID, currentPassword, newPassword)
}

type stubSessions struct {
	mintToken string
	mintErr   error
	refreshed *ports.SessionClaims
	minted    []*domain.User
}

func (s *stubSessions) Mint(user *domain.User) (string, error) {
	if s.mintErr != nil {
		return "", s.mintErr
	}
	s.minted = append(s.minted, user)
	return s.mintToken, nil
}

func (s *stubSessions) Read(token string) (*ports.SessionClaims, error) {
	if token == s.mintToken && s.refreshed != nil {
		return s.refreshed, nil
	}
	return nil, domain.ErrNoSession
}

func (s *stubSessions) Refresh(_ context.Context, token string) (string, *ports.SessionClaims, error) {
	if s.refreshed == nil || token == "" {
		return "", nil, domain.ErrNoSession
	}
	return s.mintToken, s.refreshed, nil
}

type stubThrottle struct {
	blocked  bool
	failures []string
	cleared  []string
}

func (s *stubThrottle) TooMany(_ context.Context, _ string) (bool, error) { return s.blocked, nil }

func (s *stubThrottle) RecordFailure(_ context.Context, subject string) error {
	s.failures = append(s.failures, subject)
	return nil
}

func (s *stubThrottle) Clear(_ context.Context, subject string) error {
	s.cleared = append(s.cleared, subject)
	return nil
}

type recordingSink struct {
	events []domain.AuthEvent
}

func (s *recordingSink) Record(event domain.AuthEvent) {
	s.events = append(s.events, event)
}

func (s *recordingSink) lastKind(t *testing.T) domain.AuthEventKind {
	t.Helper()
	if len(s.events) == 0 {
		t.Fatalf("no audit events recorded")
	}
	return s.events[len(s.events)-1].Kind
}

func activeUser() *domain.User {
	return &domain.User{
		ID:       "u1",
		Email:    "buyer@acme.com",
		Name:     "Buyer",
		Role:     domain.RoleCustomer,
		IsActive: true,
	}
}

func jsonContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	return nil
}

func newTestAuthHandler(auth ports.AuthService, sessions ports.SessionIssuer, throttle ports.LoginThrottle, sink ports.AuthEventSink) *AuthHandler {
	return NewAuthHandler(auth, sessions, throttle, sink, 4*time.Hour, false)
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	user := activeUser()
	auth := &stubAuthService{verifyFn: func(_ context.Context, email, password string) (*domain.User, error) {
		if email != "buyer@acme.com" || password != "s3cret" {
			t.Fatalf("unexpected credentials %q/%q", email, password)
		}
		return user, nil
	}}
	sessions := &stubSessions{mintToken: "signed-token"}
	throttle := &stubThrottle{}
	sink := &recordingSink{}
	h := newTestAuthHandler(auth, sessions, throttle, sink)

	c, rec := jsonContext(t, http.MethodPost, "/api/auth/login", `{"email":"Buyer@Acme.com","password":"s3cret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	cookie := sessionCookie(t, rec)
	if cookie == nil || cookie.Value != "signed-token" {
		t.Fatalf("session cookie not set: %+v", cookie)
	}
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie attributes wrong: %+v", cookie)
	}
	if cookie.MaxAge != int(4*time.Hour/time.Second) {
		t.Errorf("cookie MaxAge = %d, want %d", cookie.MaxAge, int(4*time.Hour/time.Second))
	}
	if len(throttle.cleared) != 1 || throttle.cleared[0] != "buyer@acme.com" {
		t.Errorf("throttle not cleared: %v", throttle.cleared)
	}
	if sink.lastKind(t) != domain.AuthEventLoginOK {
		t.Errorf("audit kind = %v", sink.lastKind(t))
	}
	if !strings.Contains(rec.Body.String(), `"buyer@acme.com"`) {
		t.Errorf("response body missing user: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_FailureRecordsThrottleAndAudit(t *testing.T) {
	for _, cause := range []error{domain.ErrUserNotFound, domain.ErrInactiveUser, domain.ErrBadPassword} {
		auth := &stubAuthService{verifyFn: func(_ context.Context, _, _ string) (*domain.User, error) {
			return nil, cause
		}}
		throttle := &stubThrottle{}
		sink := &recordingSink{}
		h := newTestAuthHandler(auth, &stubSessions{}, throttle, sink)

		c, rec := jsonContext(t, http.MethodPost, "/api/auth/login", `{"email":"buyer@acme.com","password":"nope"}`)
		err := h.Login(c)
		if !errors.Is(err, cause) {
			t.Fatalf("%v: Login returned %v", cause, err)
		}
		if cookie := sessionCookie(t, rec); cookie != nil {
			t.Errorf("%v: cookie set on failed login", cause)
		}
		if len(throttle.failures) != 1 {
			t.Errorf("%v: failure not throttled: %v", cause, throttle.failures)
		}
		if sink.lastKind(t) != domain.AuthEventLoginFailed {
			t.Errorf("%v: audit kind = %v", cause, sink.lastKind(t))
		}
	}
}

func TestAuthHandler_Login_Throttled(t *testing.T) {
	auth := &stubAuthService{verifyFn: func(_ context.Context, _, _ string) (*domain.User, error) {
		t.Fatal("Verify must not run while throttled")
		return nil, nil
	}}
	throttle := &stubThrottle{blocked: true}
	sink := &recordingSink{}
	h := newTestAuthHandler(auth, &stubSessions{}, throttle, sink)

	c, _ := jsonContext(t, http.MethodPost, "/api/auth/login", `{"email":"buyer@acme.com","password":"s3cret"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if sink.lastKind(t) != domain.AuthEventLoginThrottled {
		t.Errorf("audit kind = %v", sink.lastKind(t))
	}
}

func TestAuthHandler_Login_RejectsInvalidPayload(t *testing.T) {
	h := newTestAuthHandler(&stubAuthService{}, &stubSessions{}, &stubThrottle{}, &recordingSink{})

	for _, body := range []string{`{}`, `{"email":"not-an-email","password":"x"}`, `{"email":"a@b.com"}`} {
		c, _ := jsonContext(t, http.MethodPost, "/api/auth/login", body)
		err := h.Login(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestAuthHandler_Logout_ExpiresCookie(t *testing.T) {
	sink := &recordingSink{}
	h := newTestAuthHandler(&stubAuthService{}, &stubSessions{}, &stubThrottle{}, sink)

	c, rec := jsonContext(t, http.MethodPost, "/api/auth/logout", "")
	c.Set("session_claims", &ports.SessionClaims{SubjectID: "u1", Role: domain.RoleCustomer})
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %d, want 204", rec.Code)
	}
	cookie := sessionCookie(t, rec)
	if cookie == nil || cookie.MaxAge >= 0 || cookie.Value != "" {
		t.Fatalf("cookie not expired: %+v", cookie)
	}
	if sink.lastKind(t) != domain.AuthEventLogout {
		t.Errorf("audit kind = %v", sink.lastKind(t))
	}
}

func TestAuthHandler_Session(t *testing.T) {
	h := newTestAuthHandler(&stubAuthService{}, &stubSessions{}, &stubThrottle{}, &recordingSink{})

	c, rec := jsonContext(t, http.MethodGet, "/api/auth/session", "")
	c.Set("session_claims", &ports.SessionClaims{SubjectID: "u1", Email: "buyer@acme.com", Role: domain.RoleCustomer})
	if err := h.Session(c); err != nil {
		t.Fatalf("Session: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "buyer@acme.com") {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}

	// Without claims the middleware did not run; fail closed.
	c, _ = jsonContext(t, http.MethodGet, "/api/auth/session", "")
	err := h.Session(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	sessions := &stubSessions{
		mintToken: "fresh-token",
		refreshed: &ports.SessionClaims{SubjectID: "u1", Role: domain.RoleCustomer},
	}
	h := newTestAuthHandler(&stubAuthService{}, sessions, &stubThrottle{}, &recordingSink{})

	c, rec := jsonContext(t, http.MethodPost, "/api/auth/refresh", "")
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "old-token"})
	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	cookie := sessionCookie(t, rec)
	if cookie == nil || cookie.Value != "fresh-token" {
		t.Fatalf("refreshed cookie not set: %+v", cookie)
	}

	// No cookie at all.
	c, _ = jsonContext(t, http.MethodPost, "/api/auth/refresh", "")
	err := h.Refresh(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without cookie, got %v", err)
	}

	// Stale session: cookie is cleared so the client stops retrying.
	sessions.refreshed = nil
	c, rec = jsonContext(t, http.MethodPost, "/api/auth/refresh", "")
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "stale"})
	err = h.Refresh(c)
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for stale session, got %v", err)
	}
	if cookie := sessionCookie(t, rec); cookie == nil || cookie.MaxAge >= 0 {
		t.Fatalf("stale cookie not cleared: %+v", cookie)
	}
}

func TestAuthHandler_ChangePassword_ReissuesCookie(t *testing.T) {
	updated := activeUser()
	updated.IsTemporary = false
	auth := &stubAuthService{changeFn: func(_ context.Context, userID, current, next string) (*domain.User, error) {
		if userID != "u1" || current != "temp-pass" || next != "fresh-pass" {
			t.Fatalf("unexpected args %q/%q/%q", userID, current, next)
		}
		return updated, nil
	}}
	sessions := &stubSessions{mintToken: "post-change-token"}
	sink := &recordingSink{}
	h := newTestAuthHandler(auth, sessions, &stubThrottle{}, sink)

	c, rec := jsonContext(t, http.MethodPost, "/api/auth/change-password", `{"current_password":"temp-pass","new_password":"fresh-pass"}`)
	c.Set("session_claims", &ports.SessionClaims{SubjectID: "u1", Role: domain.RoleCustomer, IsTemporary: true})
	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "password changed") {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
	cookie := sessionCookie(t, rec)
	if cookie == nil || cookie.Value != "post-change-token" {
		t.Fatalf("cookie not re-issued: %+v", cookie)
	}
	if len(sessions.minted) != 1 || sessions.minted[0].ID != "u1" {
		t.Fatalf("fresh token not minted from updated identity")
	}
	if sink.lastKind(t) != domain.AuthEventPasswordChange {
		t.Errorf("audit kind = %v", sink.lastKind(t))
	}
}

func TestAuthHandler_ChangePassword_FailurePassesThrough(t *testing.T) {
	for _, cause := range []error{domain.ErrMissingCurrentPassword, domain.ErrIncorrectCurrentPassword, domain.ErrPasswordPolicy} {
		auth := &stubAuthService{changeFn: func(_ context.Context, _, _, _ string) (*domain.User, error) {
			return nil, cause
		}}
		h := newTestAuthHandler(auth, &stubSessions{}, &stubThrottle{}, &recordingSink{})

		c, rec := jsonContext(t, http.MethodPost, "/api/auth/change-password", `{"current_password":"x","new_password":"fresh-pass"}`)
		c.Set("session_claims", &ports.SessionClaims{SubjectID: "u1", Role: domain.RoleCustomer})
		if err := h.ChangePassword(c); !errors.Is(err, cause) {
			t.Fatalf("expected %v, got %v", cause, err)
		}
		if cookie := sessionCookie(t, rec); cookie != nil {
			t.Errorf("%v: cookie touched on failed change", cause)
		}
	}
}
