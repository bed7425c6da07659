package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rems1212/Employee-Canteen/pkg/config"
)

var (
	// Authentication metrics
	LoginCounter        prometheus.Counter
	RegisterCounter     prometheus.Counter
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorCounter    prometheus.CounterVec

	// Canteen context metrics
	CanteenContextMissingCounter prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Attendance ledger metrics
	AttendanceOperationsCounter prometheus.CounterVec

	// Inventory stock ledger metrics
	StockOperationsCounter   prometheus.CounterVec
	InsufficientStockCounter prometheus.Counter

	// Usage ledger reconciliation metrics
	OrphanUsageRecordsGauge     prometheus.Gauge
	NegativeStockItemsGauge     prometheus.Gauge
	ReconcileRunsCounter        prometheus.Counter
	ReconcileLastRunTimestampMs prometheus.Gauge
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	LoginCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_login_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	RegisterCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_register_attempts_total",
			Help: "Total number of registration attempts",
		},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful authentications",
		},
	)

	AuthErrorCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors by type",
		},
		[]string{"type"},
	)

	CanteenContextMissingCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_canteen_context_missing_total",
			Help: "Total number of requests without canteen context",
		},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	AttendanceOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_attendance_operations_total",
			Help: "Total number of attendance ledger operations",
		},
		[]string{"operation"},
	)

	StockOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_stock_operations_total",
			Help: "Total number of inventory stock ledger operations",
		},
		[]string{"operation"},
	)

	InsufficientStockCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_insufficient_stock_total",
			Help: "Total number of stock use requests rejected for insufficient quantity",
		},
	)

	OrphanUsageRecordsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_orphan_usage_records",
			Help: "Usage records whose inventory item no longer exists, as of the last reconciliation run",
		},
	)

	NegativeStockItemsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_negative_stock_items",
			Help: "Inventory items with a negative quantity, as of the last reconciliation run",
		},
	)

	ReconcileRunsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_reconcile_runs_total",
			Help: "Total number of usage ledger reconciliation runs",
		},
	)

	ReconcileLastRunTimestampMs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_reconcile_last_run_timestamp_ms",
			Help: "Unix timestamp in milliseconds of the last reconciliation run",
		},
	)
}

// RecordAttendanceOperation increments the attendance operations counter
func RecordAttendanceOperation(operation string) {
	AttendanceOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordStockOperation increments the stock operations counter
func RecordStockOperation(operation string) {
	StockOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// TrackDBOperation returns a function that, when called, records the duration
// of a database operation. Use with defer:
//
//	defer prometheus.TrackDBOperation("query")(time.Now())
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}
