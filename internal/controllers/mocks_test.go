package controllers

import (
	"context"
	"sync"
	"techpulse/internal/enrichment"
	"techpulse/internal/models"
	"techpulse/internal/providers"
	"techpulse/internal/search"
)

type mockLogger struct{}

func (m *mockLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Close()                                                  {}

type aggregateCall struct {
	category string
	page     int
}

type mockAggregator struct {
	mu          sync.Mutex
	result      models.AggregateResult
	searchHits  []models.Article
	sources     []models.SourceInfo
	calls       []aggregateCall
	searchCalls []aggregateCall
}

func (m *mockAggregator) Aggregate(_ context.Context, category string, page int) models.AggregateResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, aggregateCall{category, page})
	return m.result
}

func (m *mockAggregator) SearchAllSources(_ context.Context, query string, page int) []models.Article {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls = append(m.searchCalls, aggregateCall{query, page})
	return m.searchHits
}

func (m *mockAggregator) ActiveSources() []models.SourceInfo { return m.sources }
func (m *mockAggregator) IsMultiSourceEnabled() bool         { return len(m.sources) > 1 }
func (m *mockAggregator) Categories() []models.Category {
	return []models.Category{{ID: "technology", Name: "Technology", Native: "technology"}}
}

type mockDebouncer struct {
	err     error
	clients []string
}

func (m *mockDebouncer) Do(ctx context.Context, clientKey, query string, fn search.SearchFunc) ([]models.Article, error) {
	m.clients = append(m.clients, clientKey)
	if m.err != nil {
		return nil, m.err
	}
	return fn(ctx, query), nil
}

type mockDirty struct{ dirty bool }

func (m *mockDirty) Load() error  { return nil }
func (m *mockDirty) Flush() error { return nil }
func (m *mockDirty) Dirty() bool  { return m.dirty }

type mockAI struct {
	configured bool
	summary    enrichment.Summary
	answer     string
	analysis   enrichment.Analysis
	digest     enrichment.Digest
	err        error
	question   string
	limit      int
}

func (m *mockAI) Configured() bool { return m.configured }

func (m *mockAI) Summarize(_ context.Context, _ models.Article) (enrichment.Summary, error) {
	return m.summary, m.err
}

func (m *mockAI) Chat(_ context.Context, _ models.Article, question string) (string, error) {
	m.question = question
	return m.answer, m.err
}

func (m *mockAI) Analyze(_ context.Context, _ models.Article) enrichment.Analysis {
	return m.analysis
}

func (m *mockAI) Digest(_ context.Context, _ []models.Article, limit int) (enrichment.Digest, error) {
	m.limit = limit
	return m.digest, m.err
}

type memPersister struct {
	mu    sync.Mutex
	saves int
}

func (p *memPersister) Save(_ models.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves++
	return nil
}

func (p *memPersister) Load() (models.Snapshot, bool, error) {
	return models.DefaultSnapshot(), false, nil
}
