package domain

import "time"

// AuthEventKind identifies what happened at the auth boundary.
type AuthEventKind string

const (
	AuthEventLoginOK        AuthEventKind = "login_ok"
	AuthEventLoginFailed    AuthEventKind = "login_failed"
	AuthEventLoginThrottled AuthEventKind = "login_throttled"
	AuthEventPasswordChange AuthEventKind = "password_change"
	AuthEventLogout         AuthEventKind = "logout"
)

// AuthEvent is an audit record written off the request path. Reason carries
// the server-side failure cause (not_found, inactive, bad_password) that the
// wire response deliberately hides.
type AuthEvent struct {
	Kind       AuthEventKind `json:"kind"`
	Subject    string        `json:"subject"`
	Reason     string        `json:"reason,omitempty"`
	RemoteAddr string        `json:"remote_addr,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
