package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mindbloom/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncDegradedFetches(domain string)
	ObserveAggregationDuration(duration time.Duration)
	ObserveEnrichmentBatchSize(size int)
	ObservePersistenceDuration(duration time.Duration)
	SetHistorySize(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	degradedFetches     *prometheus.CounterVec
	aggregationDuration prometheus.Histogram
	enrichmentBatchSize prometheus.Histogram
	persistenceDuration prometheus.Histogram
	reportHistorySize   prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncDegradedFetches(domain string) {
	m.degradedFetches.WithLabelValues(domain).Inc()
}

func (m *MetricsProvider) ObserveAggregationDuration(duration time.Duration) {
	m.aggregationDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObserveEnrichmentBatchSize(size int) {
	m.enrichmentBatchSize.Observe(float64(size))
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetHistorySize(count int) {
	m.reportHistorySize.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mindbloom_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mindbloom_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mindbloom_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mindbloom_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		degradedFetches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mindbloom_degraded_fetches_total",
			Help: "Store fetches that failed and degraded to a neutral default",
		}, []string{"domain"}),

		aggregationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mindbloom_aggregation_duration_seconds",
			Help:    "Duration of progress report aggregation in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		enrichmentBatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mindbloom_enrichment_batch_size",
			Help:    "Number of notifications per enrichment batch",
			Buckets: []float64{1, 5, 10, 25, 50, 100},
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mindbloom_persistence_duration_seconds",
			Help:    "Duration of snapshot persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		reportHistorySize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "mindbloom_report_history_size",
			Help: "Number of progress reports held in the in-memory history",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncDegradedFetches(_ string)                      {}
func (n *noopMetrics) ObserveAggregationDuration(_ time.Duration)       {}
func (n *noopMetrics) ObserveEnrichmentBatchSize(_ int)                 {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetHistorySize(_ int)                             {}
