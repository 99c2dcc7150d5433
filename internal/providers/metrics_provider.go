package providers

import (
	"techpulse/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveSourceFetch(source string, articles int, duration time.Duration)
	IncSourceFailures(source string)
	ObservePersistenceDuration(duration time.Duration)
	IncPersistenceFailures()
	SetStateSize(collection string, count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	sourceArticles      *prometheus.CounterVec
	sourceDuration      *prometheus.HistogramVec
	sourceFailures      *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	persistenceFailures prometheus.Counter
	stateSize           *prometheus.GaugeVec
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

func (m *MetricsProvider) ObserveSourceFetch(source string, articles int, duration time.Duration) {
	m.sourceArticles.WithLabelValues(source).Add(float64(articles))
	m.sourceDuration.WithLabelValues(source).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncSourceFailures(source string) {
	m.sourceFailures.WithLabelValues(source).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncPersistenceFailures() {
	m.persistenceFailures.Inc()
}

func (m *MetricsProvider) SetStateSize(collection string, count int) {
	m.stateSize.WithLabelValues(collection).Set(float64(count))
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
			Name: "techpulse_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "techpulse_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "techpulse_feed_cache_hits_total",
			Help: "Total number of feed cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "techpulse_feed_cache_misses_total",
			Help: "Total number of feed cache misses",
		}),

		sourceArticles: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "techpulse_source_articles_total",
			Help: "Articles returned per news provider before deduplication",
		}, []string{"source"}),

		sourceDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "techpulse_source_fetch_duration_seconds",
			Help:    "Provider fetch duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2, 4, 8, 10},
		}, []string{"source"}),

		sourceFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "techpulse_source_failures_total",
			Help: "Provider fetches that degraded to an empty result",
		}, []string{"source"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "techpulse_persistence_duration_seconds",
			Help:    "Duration of snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		persistenceFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "techpulse_persistence_failures_total",
			Help: "Snapshot writes that failed",
		}),

		stateSize: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "techpulse_state_entries",
			Help: "Number of bookmarks and history entries held by the store",
		}, []string{"collection"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                    {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)    {}
func (n *noopMetrics) IncCacheHits()                                       {}
func (n *noopMetrics) IncCacheMisses()                                     {}
func (n *noopMetrics) ObserveSourceFetch(_ string, _ int, _ time.Duration) {}
func (n *noopMetrics) IncSourceFailures(_ string)                          {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)          {}
func (n *noopMetrics) IncPersistenceFailures()                             {}
func (n *noopMetrics) SetStateSize(_ string, _ int)                        {}
