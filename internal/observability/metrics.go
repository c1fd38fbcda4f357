// Package observability expone las métricas Prometheus del acceso a datos.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeError       = "error"
	OutcomeFKViolation = "fk_violation"
)

var (
	repoOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vet_clinic",
		Subsystem: "repository",
		Name:      "operations_total",
		Help:      "Repository operations by operation and outcome.",
	}, []string{"op", "outcome"})

	repoDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vet_clinic",
		Subsystem: "repository",
		Name:      "operation_duration_seconds",
		Help:      "Time spent in repository operations, including connection acquisition.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"op"})

	rollbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "vet_clinic",
		Subsystem: "repository",
		Name:      "transactions_rolled_back_total",
		Help:      "Write transactions rolled back after a failed insert or commit.",
	})
)

func init() {
	prometheus.MustRegister(repoOps, repoDuration, rollbacks)
}

// ObserveOperation registra el resultado y la duración de una operación.
func ObserveOperation(op, outcome string, started time.Time) {
	repoOps.WithLabelValues(op, outcome).Inc()
	repoDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

func RecordRollback() {
	rollbacks.Inc()
}
