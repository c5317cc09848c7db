package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RunsTotal counts sync invocations by pipeline and outcome
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_runs_total",
			Help: "Total number of synchronization invocations",
		},
		[]string{"pipeline", "outcome"},
	)

	// RunDuration tracks sync invocation time
	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sync_run_duration_seconds",
			Help:    "Synchronization invocation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"pipeline"},
	)

	// RecordsUpserted counts records sent to the downstream services
	RecordsUpserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_records_upserted_total",
			Help: "Total number of records upserted downstream",
		},
		[]string{"pipeline"},
	)

	// LastUnitTimestamp tracks the unit most recently synchronized
	LastUnitTimestamp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sync_last_unit_timestamp",
			Help: "Unix timestamp of the last successfully synchronized unit",
		},
		[]string{"pipeline"},
	)

	// ErrorsTotal counts errors by pipeline and stage
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_errors_total",
			Help: "Total number of synchronization errors",
		},
		[]string{"pipeline", "stage"},
	)
)
