package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal counts registration workflows by terminal state
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "governor_registrations_total",
			Help: "Total number of NPO registration workflows by terminal state",
		},
		[]string{"state"},
	)

	// RegistrationDuration tracks end-to-end workflow time
	RegistrationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "governor_registration_duration_seconds",
			Help:    "Registration workflow duration in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"state"},
	)

	// LedgerCalls counts asset ledger operations
	LedgerCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "governor_ledger_calls_total",
			Help: "Total number of asset ledger calls",
		},
		[]string{"operation", "status"},
	)

	// ContractCalls counts registry contract calls
	ContractCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "governor_contract_calls_total",
			Help: "Total number of registry contract calls",
		},
		[]string{"method", "status"},
	)

	// MintsTotal counts governance token mints by recipient role
	MintsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "governor_mints_total",
			Help: "Total number of governance token mints",
		},
		[]string{"role", "status"},
	)

	// VerifierCount tracks the size of the last resolved verifier set
	VerifierCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "governor_verifier_count",
			Help: "Number of verifiers in the last distribution",
		},
	)

	// BusyRejections counts workflows rejected because another one was running
	BusyRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "governor_busy_rejections_total",
			Help: "Total number of calls rejected while a workflow was active",
		},
	)

	// ErrorsTotal counts errors by component
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "governor_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)

// Status returns the label value for an operation outcome.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
