package providers

import (
	"fmt"
	"sync"
	"time"
)

// local doubles; testutil imports providers, so it cannot be used here
type testLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *testLogger) Errorf(_ TypeEnum, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}
func (l *testLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (l *testLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (l *testLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (l *testLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (l *testLogger) Close()                                        {}

type recordingMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
	hits            int
	misses          int
}

func (m *recordingMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *recordingMetrics) ObserveRequestDuration(_ string, _ time.Duration)    { m.durationCalls++ }
func (m *recordingMetrics) IncCacheHits()                                       { m.hits++ }
func (m *recordingMetrics) IncCacheMisses()                                     { m.misses++ }
func (m *recordingMetrics) ObserveSourceFetch(_ string, _ int, _ time.Duration) {}
func (m *recordingMetrics) IncSourceFailures(_ string)                          {}
func (m *recordingMetrics) ObservePersistenceDuration(_ time.Duration)          {}
func (m *recordingMetrics) IncPersistenceFailures()                             {}
func (m *recordingMetrics) SetStateSize(_ string, _ int)                        {}
