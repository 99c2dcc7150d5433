package testutil

import (
	"fmt"
	"strings"
	"sync"
	"techpulse/internal/providers"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level   string
	Type    providers.TypeEnum
	Message string
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Message: fmt.Sprintf(format, args...)})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Contains reports whether any entry at level mentions substr.
func (m *MockLogger) Contains(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                  sync.Mutex
	Requests            int
	CacheHits           int
	CacheMisses         int
	SourceArticles      map[string]int
	SourceFailures      map[string]int
	PersistenceWrites   int
	PersistenceFailures int
	StateSizes          map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObserveSourceFetch(source string, articles int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SourceArticles == nil {
		m.SourceArticles = make(map[string]int)
	}
	m.SourceArticles[source] += articles
}

func (m *MockMetrics) IncSourceFailures(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SourceFailures == nil {
		m.SourceFailures = make(map[string]int)
	}
	m.SourceFailures[source]++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceWrites++
}

func (m *MockMetrics) IncPersistenceFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceFailures++
}

func (m *MockMetrics) SetStateSize(collection string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StateSizes == nil {
		m.StateSizes = make(map[string]int)
	}
	m.StateSizes[collection] = count
}

func (m *MockMetrics) Failures(source string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SourceFailures[source]
}

// MockCache is an in-memory providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
	Sets int
}

func (c *MockCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.Data[key]
	return v, ok
}

func (c *MockCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Data == nil {
		c.Data = make(map[string][]byte)
	}
	c.Data[key] = value
	c.Sets++
}

// Clock is a settable time source for code that takes func() time.Time.
type Clock struct {
	mu  sync.Mutex
	cur time.Time
}

func NewClock(t time.Time) *Clock {
	return &Clock{cur: t}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = t
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(d)
}
