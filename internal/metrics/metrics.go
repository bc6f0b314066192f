package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the attribution and analytics pipeline:
// - tracking events by kind and outcome
// - upsert conflicts recovered on the update branch
// - events dropped after a store failure
// - reconciliation runs

var (
	// Event Metrics
	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_analytics_events_total",
			Help: "Total number of tracking events processed",
		},
		[]string{"kind", "action"}, // kind: scan, page_view, lead
	)

	EventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_analytics_events_dropped_total",
			Help: "Total number of tracking events dropped after a store failure",
		},
		[]string{"kind", "stage"}, // stage: session, analytics, lead, log
	)

	// Upsert Metrics
	UpsertOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_analytics_upsert_outcomes_total",
			Help: "Total number of upserts by target and outcome",
		},
		[]string{"target", "outcome"}, // outcome: created, updated, recovered
	)

	UpsertConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_analytics_upsert_conflicts_total",
			Help: "Total number of unique constraint conflicts recovered by updating the existing row",
		},
		[]string{"target"},
	)

	// Reconciliation Metrics
	ReconcileRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_analytics_reconcile_runs_total",
			Help: "Total number of reconciliation runs",
		},
		[]string{"status"}, // success, failure
	)

	ReconcileDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lead_analytics_reconcile_duration_seconds",
			Help:    "Duration of reconciliation runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	ReconcileRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_analytics_reconcile_records_total",
			Help: "Total number of daily records written by reconciliation",
		},
		[]string{"result"}, // created, updated, failed
	)
)

// RecordEvent records a processed tracking event
func RecordEvent(kind, action string) {
	EventsTotal.WithLabelValues(kind, action).Inc()
}

// RecordDroppedEvent records a tracking event lost at the given stage
func RecordDroppedEvent(kind, stage string) {
	EventsDropped.WithLabelValues(kind, stage).Inc()
}

// RecordUpsert records the outcome of an upsert
func RecordUpsert(target, outcome string) {
	UpsertOutcomes.WithLabelValues(target, outcome).Inc()
}

// RecordUpsertConflict records a unique constraint conflict that was recovered
func RecordUpsertConflict(target string) {
	UpsertConflicts.WithLabelValues(target).Inc()
}

// RecordReconcileRun records a reconciliation run
func RecordReconcileRun(duration time.Duration, created, updated, failed int, err error) {
	ReconcileDuration.Observe(duration.Seconds())
	ReconcileRecords.WithLabelValues("created").Add(float64(created))
	ReconcileRecords.WithLabelValues("updated").Add(float64(updated))
	ReconcileRecords.WithLabelValues("failed").Add(float64(failed))

	if err != nil {
		ReconcileRuns.WithLabelValues("failure").Inc()
		return
	}
	ReconcileRuns.WithLabelValues("success").Inc()
}
