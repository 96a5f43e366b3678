// Package metrics defines and registers all custom Prometheus metrics for the
// QuickBite service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quickbite"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "disabled" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts bearer tokens refused by the authentication gate.
// Label:
//   - reason: "expired", "malformed", "unsupported", "bad_signature" or "prefix"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of bearer tokens rejected, by reason.",
	},
	[]string{"reason"},
)

// AuthorizationDecisionsTotal counts policy outcomes.
// Label:
//   - decision: "permit", "unauthenticated" or "forbidden"
var AuthorizationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_decisions_total",
		Help:      "Total number of authorization decisions, by outcome.",
	},
	[]string{"decision"},
)

// PasswordHashDuration measures bcrypt hashing time.
var PasswordHashDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of password hashing.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
)

// ── Persistence metrics ───────────────────────────────────────────────────────

// GuardedDeletesTotal counts user deletions passing through the ownership guard.
// Label:
//   - result: "deleted", "blocked", "not_found" or "error"
var GuardedDeletesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guarded_deletes_total",
		Help:      "Total number of user delete attempts, by result.",
	},
	[]string{"result"},
)

// RestaurantCacheTotal counts restaurant cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var RestaurantCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "restaurant_cache_total",
		Help:      "Total number of restaurant cache lookups, by result.",
	},
	[]string{"result"},
)
