package middleware

import "strings"

// Session cookie and the well-known navigation targets the guard redirects to.
const (
	SessionCookieName  = "storefront_session"
	HomePath           = "/"
	LoginPath          = "/login"
	ChangePasswordPath = "/change-password"
)

// publicPaths are navigable without a session.
var publicPaths = map[string]struct{}{
	HomePath:     {},
	LoginPath:    {},
	"/products":  {},
	"/about":     {},
	"/contact":   {},
	"/quotation": {},
}

// adminPrefixes gate the admin console and the content studio.
var adminPrefixes = []string{"/admin", "/studio"}

// Exempt paths bypass the guard entirely: the API surface (which carries its
// own session middleware), static assets and operational endpoints.
var exemptPrefixes = []string{"/api/", "/static/", "/assets/", "/public/", "/swagger/"}

var exemptPaths = map[string]struct{}{
	"/favicon.ico":  {},
	"/health":       {},
	"/health/ready": {},
	"/metrics":      {},
}

// IsPublic reports whether path is on the fixed public allow-list.
func IsPublic(path string) bool {
	_, ok := publicPaths[path]
	return ok
}

// IsAdminPath reports whether path sits under an admin-restricted prefix.
func IsAdminPath(path string) bool {
	for _, prefix := range adminPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// IsExempt reports whether path bypasses the guard entirely.
func IsExempt(path string) bool {
	if _, ok := exemptPaths[path]; ok {
		return true
	}
	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
