// Package metrics defines and registers all custom Prometheus metrics for
// the prompt-market gateway. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "promptmarket"

// SessionInitsTotal counts session init outcomes.
// Label:
//   - outcome: "guest", "valid", "expired", "optimistic"
var SessionInitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_inits_total",
		Help:      "Total number of session initialisations, by probe outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts registration attempts forwarded upstream.
// Label:
//   - result: "created", "validation", "taken", "server", "network"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// MarketPagesFetchedTotal counts market listing pages.
// Label:
//   - market: market name
//   - result: "ok" or "error"
var MarketPagesFetchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "market_pages_fetched_total",
		Help:      "Total number of federated market pages fetched, by result.",
	},
	[]string{"market", "result"},
)

// PromptsSyncedTotal counts prompts written to the catalog cache.
// Label:
//   - market: market name
var PromptsSyncedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prompts_synced_total",
		Help:      "Total number of prompts upserted into the catalog cache.",
	},
	[]string{"market"},
)

// SyncDuration measures a full market sync end-to-end.
// Label:
//   - market: market name
var SyncDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sync_duration_seconds",
		Help:      "Duration of a full catalog sync, fetch through persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"market"},
)

// GuardRedirectsTotal counts navigation-guard denials.
// Label:
//   - reason: "auth" or "admin"
var GuardRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of route entries redirected by the navigation guard.",
	},
	[]string{"reason"},
)
