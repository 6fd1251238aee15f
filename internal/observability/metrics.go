// Package observability registers and updates prometheus metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "workout_tracker",
		Subsystem: "persistence",
		Name:      "last_workout_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent workout persisted to Postgres.",
	})
	workoutsCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "persistence",
		Name:      "workouts_created_total",
		Help:      "Number of workouts created.",
	})
	workoutsDeletedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "persistence",
		Name:      "workouts_deleted_total",
		Help:      "Number of workouts deleted.",
	})
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "workout_tracker",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status"})
)

func init() {
	prometheus.MustRegister(workoutPersistGauge, workoutsCreatedCounter, workoutsDeletedCounter, requestDuration)
}

// RecordWorkoutPersisted updates the persistence watermark gauge.
func RecordWorkoutPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	workoutPersistGauge.Set(float64(ts.Unix()))
}

// WorkoutCreated increments the created counter.
func WorkoutCreated() {
	workoutsCreatedCounter.Inc()
}

// WorkoutDeleted increments the deleted counter.
func WorkoutDeleted() {
	workoutsDeletedCounter.Inc()
}

// ObserveRequest records one HTTP request's latency.
func ObserveRequest(method, status string, elapsed time.Duration) {
	requestDuration.WithLabelValues(method, status).Observe(elapsed.Seconds())
}
