package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/forgeline/storefront-api/internal/core/domain"
	"github.com/forgeline/storefront-api/internal/core/ports"
)

// stubIssuer validates tokens against a fixed map; everything else is
// domain.ErrNoSession, matching the real issuer's failure collapsing.
type stubIssuer struct {
	sessions map[string]*ports.SessionClaims
}

func newStubIssuer() *stubIssuer {
	return &stubIssuer{sessions: make(map[string]*ports.SessionClaims)}
}

func (s *stubIssuer) grant(token string, claims *ports.SessionClaims) string {
	s.sessions[token] = claims
	return token
}

func (s *stubIssuer) Mint(user *domain.User) (string, error) {
	token := "minted-" + user.ID
	s.sessions[token] = &ports.SessionClaims{
		SubjectID:   user.ID,
		Email:       user.Email,
		Role:        user.Role,
		IsTemporary: user.IsTemporary,
	}
	return token, nil
}

func (s *stubIssuer) Read(token string) (*ports.SessionClaims, error) {
	if claims, ok := s.sessions[token]; ok {
		return claims, nil
	}
	return nil, domain.ErrNoSession
}

func (s *stubIssuer) Refresh(_ context.Context, token string) (string, *ports.SessionClaims, error) {
	claims, err := s.Read(token)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

func customerClaims() *ports.SessionClaims {
	return &ports.SessionClaims{SubjectID: "u1", Email: "buyer@acme.com", Role: domain.RoleCustomer}
}

func adminClaims() *ports.SessionClaims {
	return &ports.SessionClaims{SubjectID: "a1", Email: "admin@acme.com", Role: domain.RoleAdmin}
}

// guardRequest runs target through the guard and reports the recorder plus
// whether the wrapped handler ran.
func guardRequest(t *testing.T, issuer ports.SessionIssuer, target, token string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Guard(issuer)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("guard returned error: %v", err)
	}
	return rec, called
}

func TestGuard_PublicPathsAllowAnonymous(t *testing.T) {
	issuer := newStubIssuer()
	for _, path := range []string{"/", "/login", "/products", "/about", "/contact", "/quotation"} {
		rec, called := guardRequest(t, issuer, path, "")
		if !called || rec.Code != http.StatusOK {
			t.Errorf("%s: expected pass-through, got called=%v code=%d", path, called, rec.Code)
		}
	}
}

func TestGuard_ExemptPathsBypassEntirely(t *testing.T) {
	issuer := newStubIssuer()
	for _, path := range []string{"/api/auth/login", "/static/app.css", "/assets/logo.png", "/favicon.ico", "/health", "/metrics", "/swagger/index.html"} {
		rec, called := guardRequest(t, issuer, path, "garbage-token")
		if !called || rec.Code != http.StatusOK {
			t.Errorf("%s: expected bypass, got called=%v code=%d", path, called, rec.Code)
		}
	}
}

func TestGuard_NoSessionRedirectsToLoginWithCallback(t *testing.T) {
	issuer := newStubIssuer()

	rec, called := guardRequest(t, issuer, "/account/orders?page=2&sort=date", "")
	if called {
		t.Fatalf("handler ran without a session")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("code = %d, want 302", rec.Code)
	}
	want := "/login?callbackUrl=%2Faccount%2Forders%3Fpage%3D2%26sort%3Ddate"
	if got := rec.Header().Get("Location"); got != want {
		t.Fatalf("Location = %q, want %q", got, want)
	}
}

func TestGuard_InvalidTokenTreatedAsNoSession(t *testing.T) {
	issuer := newStubIssuer()

	rec, called := guardRequest(t, issuer, "/account", "expired-or-forged")
	if called {
		t.Fatalf("handler ran with an invalid token")
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login?callbackUrl=%2Faccount" {
		t.Fatalf("got code=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGuard_TemporaryPasswordForcedToChangePassword(t *testing.T) {
	issuer := newStubIssuer()
	claims := customerClaims()
	claims.IsTemporary = true
	token := issuer.grant("temp-session", claims)

	for _, path := range []string{"/account", "/account/orders"} {
		rec, called := guardRequest(t, issuer, path, token)
		if called {
			t.Fatalf("%s: handler ran with a temporary session", path)
		}
		if rec.Code != http.StatusFound || rec.Header().Get("Location") != ChangePasswordPath {
			t.Fatalf("%s: got code=%d location=%q", path, rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestGuard_TemporaryAdminStillForcedToChangePassword(t *testing.T) {
	issuer := newStubIssuer()
	claims := adminClaims()
	claims.IsTemporary = true
	token := issuer.grant("temp-admin", claims)

	// The temporary rule outranks the admin rule even on admin paths.
	rec, called := guardRequest(t, issuer, "/admin/users", token)
	if called {
		t.Fatalf("handler ran with a temporary admin session")
	}
	if rec.Header().Get("Location") != ChangePasswordPath {
		t.Fatalf("Location = %q, want %q", rec.Header().Get("Location"), ChangePasswordPath)
	}
}

func TestGuard_ChangePasswordReachableWithTemporarySession(t *testing.T) {
	issuer := newStubIssuer()
	claims := customerClaims()
	claims.IsTemporary = true
	token := issuer.grant("temp-session", claims)

	rec, called := guardRequest(t, issuer, ChangePasswordPath, token)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("change-password unreachable: called=%v code=%d", called, rec.Code)
	}
}

func TestGuard_NonAdminOnAdminPathRedirectsHome(t *testing.T) {
	issuer := newStubIssuer()
	token := issuer.grant("customer-session", customerClaims())

	// Authenticated but unauthorized: home, not the login page.
	for _, path := range []string{"/admin", "/admin/users", "/studio"} {
		rec, called := guardRequest(t, issuer, path, token)
		if called {
			t.Fatalf("%s: handler ran for non-admin", path)
		}
		if rec.Code != http.StatusFound || rec.Header().Get("Location") != HomePath {
			t.Fatalf("%s: got code=%d location=%q", path, rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestGuard_AdminReachesAdminPaths(t *testing.T) {
	issuer := newStubIssuer()
	token := issuer.grant("admin-session", adminClaims())

	for _, path := range []string{"/admin", "/admin/quotes", "/studio"} {
		rec, called := guardRequest(t, issuer, path, token)
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("%s: expected pass-through, got called=%v code=%d", path, called, rec.Code)
		}
	}
}

func TestGuard_AuthenticatedCustomerReachesAccount(t *testing.T) {
	issuer := newStubIssuer()
	token := issuer.grant("customer-session", customerClaims())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *ports.SessionClaims
	handler := Guard(issuer)(func(c echo.Context) error {
		seen, _ = ClaimsFrom(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("guard returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	if seen == nil || seen.SubjectID != "u1" {
		t.Fatalf("claims not injected into context: %+v", seen)
	}
}
