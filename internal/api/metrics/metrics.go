// Package metrics defines and registers all custom Prometheus metrics for
// the storefront API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// LoginsTotal counts login attempts at the auth boundary.
// Label:
//   - result: "ok", "invalid", "throttled" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts route guard outcomes per navigable request.
// Label:
//   - outcome: "allow", "allow_public", "redirect_login",
//     "redirect_change_password" or "redirect_home"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, labelled by outcome.",
	},
	[]string{"outcome"},
)

// PasswordChangesTotal counts password change attempts.
// Label:
//   - result: "ok", "policy_violation", "missing_current",
//     "incorrect_current" or "error"
var PasswordChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_changes_total",
		Help:      "Total number of password change attempts, labelled by result.",
	},
	[]string{"result"},
)

// SessionsIssuedTotal counts minted session tokens.
// Label:
//   - kind: "login" or "refresh"
var SessionsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of session tokens minted, labelled by trigger.",
	},
	[]string{"kind"},
)
