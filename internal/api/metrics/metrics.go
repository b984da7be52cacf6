// Package metrics defines and registers the custom Prometheus metrics for the
// employee records API. It is the single source of truth for metric names,
// labels, and help strings. Registration with the default registry happens at
// import time via promauto; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "employee_records"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests rejected by the authorization guard.
// Label:
//   - reason: "unauthenticated", "malformed_token", "expired_token", "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the authorization guard, by reason.",
	},
	[]string{"reason"},
)

// ── Employee metrics ──────────────────────────────────────────────────────────

// EmployeesCreatedTotal counts newly created employee records.
var EmployeesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employees_created_total",
		Help:      "Total number of employee records created.",
	},
)

// EmployeeMutationsTotal counts mutating employee operations.
// Labels:
//   - action: "create", "update", "delete", "seed"
//   - result: "success" or "failure"
var EmployeeMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employee_mutations_total",
		Help:      "Total number of mutating employee operations, by action and result.",
	},
	[]string{"action", "result"},
)
