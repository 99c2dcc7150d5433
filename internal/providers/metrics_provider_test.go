package providers

import (
	"techpulse/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolatedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	prevReg, prevGath := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevReg
		prometheus.DefaultGatherer = prevGath
	})
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: false}})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/feed", 200)
	m.ObserveRequestDuration("/feed", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObserveSourceFetch("gnews", 10, time.Second)
	m.IncSourceFailures("gnews")
	m.ObservePersistenceDuration(time.Millisecond)
	m.IncPersistenceFailures()
	m.SetStateSize("bookmarks", 3)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	isolatedRegistry(t)

	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_RecordsValues(t *testing.T) {
	isolatedRegistry(t)

	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}})
	mp, ok := m.(*MetricsProvider)
	require.True(t, ok)

	m.IncRequestsTotal("/feed", 200)
	m.IncRequestsTotal("/feed", 204)
	m.IncRequestsTotal("/feed", 502)
	m.IncCacheHits()
	m.ObserveSourceFetch("newsapi", 15, 200*time.Millisecond)
	m.ObserveSourceFetch("newsapi", 5, 100*time.Millisecond)
	m.IncSourceFailures("currents")
	m.IncPersistenceFailures()
	m.SetStateSize("history", 100)

	assert.Equal(t, 2.0, promtest.ToFloat64(mp.requestsTotal.WithLabelValues("/feed", "2xx")))
	assert.Equal(t, 1.0, promtest.ToFloat64(mp.requestsTotal.WithLabelValues("/feed", "5xx")))
	assert.Equal(t, 1.0, promtest.ToFloat64(mp.cacheHits))
	assert.Equal(t, 20.0, promtest.ToFloat64(mp.sourceArticles.WithLabelValues("newsapi")))
	assert.Equal(t, 1.0, promtest.ToFloat64(mp.sourceFailures.WithLabelValues("currents")))
	assert.Equal(t, 1.0, promtest.ToFloat64(mp.persistenceFailures))
	assert.Equal(t, 100.0, promtest.ToFloat64(mp.stateSize.WithLabelValues("history")))
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{409, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
