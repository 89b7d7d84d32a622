// Package metrics defines the Prometheus collectors of the user management
// service. All collectors register with the default registry on import and
// are served by promhttp on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "user_management"

// HTTPRequestsTotal counts handled requests.
// Labels:
//   - method: HTTP method
//   - route: gin route template (e.g. "/api/v1/users/:id")
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by method, route and status.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures request latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// MutationsTotal counts successful writes.
// Labels:
//   - entity: "user", "role" or "assignment"
//   - op: "create", "update" or "delete"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of successful create/update/delete operations.",
	},
	[]string{"entity", "op"},
)

// MutationErrorsTotal counts rejected or failed writes.
// Labels:
//   - entity: "user", "role" or "assignment"
//   - kind: "validation", "not_found", "conflict" or "storage"
var MutationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutation_errors_total",
		Help:      "Total number of create/update/delete operations that returned an error.",
	},
	[]string{"entity", "kind"},
)
