// Package metrics defines the Prometheus collectors updated while verifying replication.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// registerOnce ensures Register() is idempotent.
var registerOnce sync.Once

// Poller metrics.
var (
	// PollsTotal counts replication status polls by wait mode and outcome.
	PollsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replverify_polls_total",
			Help: "Replication status polls by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	// WaitDuration observes the time taken for an object to settle (or for the budget to run out) in seconds.
	WaitDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "replverify_wait_duration_seconds",
			Help:    "Time spent waiting for replication to settle in seconds",
			Buckets: []float64{1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"mode", "state"},
	)
)

// Verification metrics.
var (
	// VerificationsTotal counts scenario runs by scenario and result.
	VerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replverify_verifications_total",
			Help: "Verification runs by scenario and result",
		},
		[]string{"scenario", "result"},
	)

	// MismatchesTotal counts comparator mismatches by destination and field.
	MismatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replverify_mismatches_total",
			Help: "Comparator mismatches by destination and field",
		},
		[]string{"destination", "field"},
	)

	// BackbeatRequestsTotal counts requests made to the replication service API by operation and status.
	BackbeatRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replverify_backbeat_requests_total",
			Help: "Replication service API requests by operation and status",
		},
		[]string{"operation", "status"},
	)
)

// Register registers all the collectors with the given registerer, it's safe to call multiple times; subsequent calls
// are no-ops.
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(
			PollsTotal,
			WaitDuration,
			VerificationsTotal,
			MismatchesTotal,
			BackbeatRequestsTotal,
		)
	})
}

// WriteTextfile writes the current value of every collector registered with the given gatherer to 'path' in the
// Prometheus text format, suitable for the node exporter textfile collector.
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	err := prometheus.WriteToTextfile(path, gatherer)
	if err != nil {
		return fmt.Errorf("failed to write metrics to '%s': %w", path, err)
	}

	return nil
}
