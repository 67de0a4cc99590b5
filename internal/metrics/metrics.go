// Package metrics declara as métricas Prometheus da API. Os vetores são
// registrados no registry padrão via promauto na inicialização do pacote.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clinic"

// ── HTTP ──────────────────────────────────────────────────────────────────────

// HTTPRequestsTotal conta requisições por rota (template do gin), método e status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Consultations ─────────────────────────────────────────────────────────────

// ConsultationTransitionsTotal conta mudanças de status confirmadas.
// Labels:
//   - from: status anterior ("" na criação)
//   - to: S, F ou C
var ConsultationTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "consultation_transitions_total",
		Help:      "Committed consultation status transitions.",
	},
	[]string{"from", "to"},
)

// ConsultationRejectedTotal conta transições recusadas pelo guard de status.
var ConsultationRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "consultation_transitions_rejected_total",
		Help:      "Consultation transitions rejected because of the current status.",
	},
	[]string{"action", "from"},
)

// ── Auth ──────────────────────────────────────────────────────────────────────

// LoginAttemptsTotal: result = success, invalid_credentials, throttled.
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Login attempts by result.",
	},
	[]string{"result"},
)

var AccountsRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_registered_total",
		Help:      "Accounts created, by role.",
	},
	[]string{"role"},
)
