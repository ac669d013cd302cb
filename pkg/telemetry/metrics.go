package telemetry

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus observability primitives for the query and
// analytics engine.
type Metrics struct {
	apiRequests      *prometheus.CounterVec
	apiDuration      *prometheus.HistogramVec
	listQueries      *prometheus.CounterVec
	listDuration     *prometheus.HistogramVec
	aggregations     *prometheus.CounterVec
	aggregationTime  *prometheus.HistogramVec
	cacheLookups     *prometheus.CounterVec
	recentMergedRows prometheus.Histogram
}

// NewMetrics registers and returns Prometheus metrics for telemetry.
func NewMetrics() *Metrics {
	apiRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "paymirror_api_requests_total",
		Help: "Counts API requests by method, status, and tenant.",
	}, []string{"method", "status", "tenant"})

	apiDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "paymirror_api_duration_seconds",
		Help:    "API request latency per method/tenant.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "tenant"})

	listQueries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "paymirror_list_queries_total",
		Help: "Entity list queries by collection and tenant.",
	}, []string{"entity", "tenant"})

	listDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "paymirror_list_query_duration_seconds",
		Help:    "Entity list query latency by collection.",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity"})

	aggregations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "paymirror_dashboard_aggregations_total",
		Help: "Dashboard aggregations by period and outcome.",
	}, []string{"period", "status"})

	aggregationTime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "paymirror_dashboard_aggregation_duration_seconds",
		Help:    "Dashboard aggregation latency by period.",
		Buckets: prometheus.DefBuckets,
	}, []string{"period"})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "paymirror_dashboard_cache_lookups_total",
		Help: "Dashboard cache lookups by outcome (hit, miss, error).",
	}, []string{"outcome"})

	recentMergedRows := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "paymirror_recent_merged_rows",
		Help:    "Merged recent-transaction rows before truncation.",
		Buckets: []float64{0, 5, 10, 15, 20, 30, 50},
	})

	prometheus.MustRegister(
		apiRequests,
		apiDuration,
		listQueries,
		listDuration,
		aggregations,
		aggregationTime,
		cacheLookups,
		recentMergedRows,
	)

	return &Metrics{
		apiRequests:      apiRequests,
		apiDuration:      apiDuration,
		listQueries:      listQueries,
		listDuration:     listDuration,
		aggregations:     aggregations,
		aggregationTime:  aggregationTime,
		cacheLookups:     cacheLookups,
		recentMergedRows: recentMergedRows,
	}
}

// ObserveAPIRequest records an API request and latency.
func (m *Metrics) ObserveAPIRequest(method, status, tenant string, duration time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(sanitizeLabel(method), status, sanitizeTenant(tenant)).Inc()
	m.apiDuration.WithLabelValues(sanitizeLabel(method), sanitizeTenant(tenant)).Observe(duration.Seconds())
}

// ObserveListQuery records one entity list query.
func (m *Metrics) ObserveListQuery(entity, tenant string, duration time.Duration) {
	if m == nil {
		return
	}
	m.listQueries.WithLabelValues(entity, sanitizeTenant(tenant)).Inc()
	m.listDuration.WithLabelValues(entity).Observe(duration.Seconds())
}

// ObserveAggregation records one dashboard aggregation.
func (m *Metrics) ObserveAggregation(period, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.aggregations.WithLabelValues(period, status).Inc()
	m.aggregationTime.WithLabelValues(period).Observe(duration.Seconds())
}

// ObserveCacheLookup records a dashboard cache outcome.
func (m *Metrics) ObserveCacheLookup(outcome string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(outcome).Inc()
}

// ObserveRecentMerge records the merged row count of a recent-activity read.
func (m *Metrics) ObserveRecentMerge(rows int) {
	if m == nil {
		return
	}
	m.recentMergedRows.Observe(float64(rows))
}

func sanitizeTenant(tenant string) string {
	tenant = strings.TrimSpace(tenant)
	if tenant == "" {
		return "unknown"
	}
	return tenant
}

func sanitizeLabel(label string) string {
	label = strings.TrimSpace(strings.ToUpper(label))
	if label == "" {
		return "UNKNOWN"
	}
	return label
}
