// Package metrics exposes the Prometheus metrics of the cargo service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cargo"

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// PlanningDuration tracks the CPU-bound planners by operation
	// (placement, retrieval, return_plan, rearrangement).
	PlanningDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "planning_duration_seconds",
			Help:      "Planner run time in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	// PlacementOutcomes counts planned items by outcome status and reason.
	PlacementOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placement_outcomes_total",
			Help:      "Placement planning outcomes",
		},
		[]string{"status", "reason"},
	)

	PlacementConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placement_conflicts_total",
			Help:      "Commits lost to a concurrent writer",
		},
	)

	ContainerLockWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "container_lock_wait_seconds",
			Help:      "Time spent waiting for a container lock",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
	)

	ContainerLockTimeouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "container_lock_timeouts_total",
			Help:      "Container lock acquisitions that timed out",
		},
	)

	SimulatedDays = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulated_days_total",
			Help:      "Days advanced by the simulation clock",
		},
	)

	SimulatedDate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "simulated_date_seconds",
			Help:      "Current simulated date as a Unix timestamp",
		},
	)

	ImportRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Imported rows by entity and result",
		},
		[]string{"entity", "result"},
	)

	ActionLogEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "action_log_events_total",
			Help:      "Action log writes by path (async, sync) and result",
		},
		[]string{"path", "result"},
	)

	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter, by scope (ip, user)",
		},
		[]string{"scope"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware records HTTP request metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		statusCode := strconv.Itoa(c.Writer.Status())
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, statusCode).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(c.Request.Method, path, statusCode).Inc()
	}
}

// ObservePlanning records the run time of a planner operation.
func ObservePlanning(operation string, d time.Duration) {
	PlanningDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordPlacementOutcome counts a planned item.
func RecordPlacementOutcome(status, reason string) {
	PlacementOutcomes.WithLabelValues(status, reason).Inc()
}

// ObserveLock records a container lock acquisition.
func ObserveLock(waited time.Duration, timedOut bool) {
	ContainerLockWait.Observe(waited.Seconds())
	if timedOut {
		ContainerLockTimeouts.Inc()
	}
}

// RecordSimulation records an advance of the clock.
func RecordSimulation(days int, date time.Time) {
	SimulatedDays.Add(float64(days))
	SimulatedDate.Set(float64(date.Unix()))
}

// RecordImport counts imported and rejected rows.
func RecordImport(entity string, imported, rejected int) {
	ImportRows.WithLabelValues(entity, "imported").Add(float64(imported))
	ImportRows.WithLabelValues(entity, "rejected").Add(float64(rejected))
}

// RecordActionLog counts an action log write.
func RecordActionLog(path string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ActionLogEvents.WithLabelValues(path, result).Inc()
}

// RecordCacheOperation counts a cache operation.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// RecordRateLimited counts a rejected request.
func RecordRateLimited(scope string) {
	RateLimited.WithLabelValues(scope).Inc()
}

// SetCircuitBreakerState publishes a breaker state.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
