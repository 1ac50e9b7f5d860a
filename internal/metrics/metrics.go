// Package metrics holds the Prometheus collectors for sync and backup activity.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Reload runs by outcome: completed, failed, skipped (already in flight)
	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "easel_sync_runs_total",
			Help: "Total number of sync attempts by outcome",
		},
		[]string{"outcome"},
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "easel_sync_duration_seconds",
			Help:    "Duration of completed syncs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
	)

	// Records left out of a lenient load, by collection
	RecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "easel_records_skipped_total",
			Help: "Total number of records skipped while loading",
		},
		[]string{"collection"},
	)

	BackupWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "easel_backup_writes_total",
			Help: "Total number of backup-wrapped saves by status",
		},
		[]string{"status"}, // status: success, failed
	)

	BackupFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "easel_backup_fallbacks_total",
			Help: "Total number of loads that fell back past the primary value",
		},
		[]string{"result"}, // result: backup, absent
	)

	SnapshotsPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "easel_snapshots_pruned_total",
			Help: "Total number of emergency snapshots deleted by cleanup",
		},
	)

	TriggersIgnored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "easel_sync_triggers_ignored_total",
			Help: "Total number of sync triggers with no sync registered",
		},
	)
)

// RecordSync records the outcome of a sync attempt.
func RecordSync(outcome string, duration time.Duration) {
	SyncRuns.WithLabelValues(outcome).Inc()
	if outcome == "completed" {
		SyncDuration.Observe(duration.Seconds())
	}
}

// RecordSkipped adds n skipped records for collection.
func RecordSkipped(collection string, n int) {
	if n > 0 {
		RecordsSkipped.WithLabelValues(collection).Add(float64(n))
	}
}

// RecordBackupWrite records a backup-wrapped save.
func RecordBackupWrite(err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	BackupWrites.WithLabelValues(status).Inc()
}

// RecordFallback records a load that could not use the primary value.
func RecordFallback(result string) {
	BackupFallbacks.WithLabelValues(result).Inc()
}
