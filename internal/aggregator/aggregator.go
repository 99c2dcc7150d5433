package aggregator

import (
	"context"
	"fmt"
	"strings"
	"techpulse/internal/models"
	"techpulse/internal/providers"
	"techpulse/internal/sources"
	"techpulse/internal/structures"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

type AggregatorInterface interface {
	Aggregate(ctx context.Context, categoryID string, page int) models.AggregateResult
	SearchAllSources(ctx context.Context, query string, page int) []models.Article
	ActiveSources() []models.SourceInfo
	IsMultiSourceEnabled() bool
	Categories() []models.Category
}

type Aggregator struct {
	adapters []sources.Adapter
	cache    providers.CacheProviderInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	timeout  time.Duration
}

func NewAggregator(conf *structures.Config, adapters []sources.Adapter, cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *Aggregator {
	return &Aggregator{
		adapters: adapters,
		cache:    cache,
		logger:   logger,
		metrics:  metrics,
		timeout:  conf.Aggregator.Timeout,
	}
}

// Aggregate fans out to every adapter, merges, deduplicates and sorts.
// Provider failures only show up as zero counts in SourceStats.
func (ag *Aggregator) Aggregate(ctx context.Context, categoryID string, page int) models.AggregateResult {
	category := resolveCategory(categoryID)
	page = max(page, 1)

	key := fmt.Sprintf("agg:%s:%d", category.ID, page)
	if cached, ok := ag.cachedResult(key); ok {
		return cached
	}

	results := ag.fanOut(ctx, queryFor(category, page))

	res := models.AggregateResult{SourceStats: make(map[string]int, len(ag.adapters))}
	var all []models.Article
	for i, a := range ag.adapters {
		r := results[i]
		res.SourceStats[a.Name()] = len(r.Articles)
		if len(r.Articles) > 0 {
			all = append(all, r.Articles...)
			res.TotalArticles += r.Total
		}
	}

	res.Articles = models.RemoveDuplicates(all)
	models.SortByPublished(res.Articles)
	res.SourcesUsed = ag.sourcesUsed(res.Articles)

	ag.logger.Infof(providers.TypeApp, "aggregated %s page %d: %d articles from %v", category.ID, page, len(res.Articles), res.SourcesUsed)

	if len(res.Articles) > 0 {
		ag.storeResult(key, res)
	}
	return res
}

func (ag *Aggregator) SearchAllSources(ctx context.Context, query string, page int) []models.Article {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Article{}
	}

	results := ag.fanOut(ctx, models.Query{Text: query, Page: max(page, 1)})

	var all []models.Article
	for _, r := range results {
		all = append(all, r.Articles...)
	}
	articles := models.RemoveDuplicates(all)
	models.SortByPublished(articles)
	return articles
}

func (ag *Aggregator) ActiveSources() []models.SourceInfo {
	active := make([]models.SourceInfo, 0, len(ag.adapters))
	for _, a := range ag.adapters {
		if a.Enabled() {
			active = append(active, models.SourceInfo{ID: a.Key(), Name: a.Label(), Enabled: true})
		}
	}
	return active
}

func (ag *Aggregator) IsMultiSourceEnabled() bool {
	return len(ag.ActiveSources()) > 1
}

func (ag *Aggregator) Categories() []models.Category {
	return append([]models.Category(nil), categories...)
}

// fanOut runs every adapter concurrently and waits for all of them. Each
// goroutine returns nil so no sibling is cancelled; a failure becomes an
// empty result at its index.
func (ag *Aggregator) fanOut(ctx context.Context, q models.Query) []models.FetchResult {
	results := make([]models.FetchResult, len(ag.adapters))
	var g errgroup.Group
	for i, a := range ag.adapters {
		g.Go(func() error {
			results[i] = ag.fetchOne(ctx, a, q)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (ag *Aggregator) fetchOne(ctx context.Context, a sources.Adapter, q models.Query) (res models.FetchResult) {
	defer func() {
		if r := recover(); r != nil {
			ag.logger.Errorf(providers.TypeSource, "%s panicked: %v", a.Name(), r)
			ag.metrics.IncSourceFailures(a.Name())
			res = models.FetchResult{}
		}
	}()

	if ag.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ag.timeout)
		defer cancel()
	}

	res, err := a.Fetch(ctx, q)
	if err != nil {
		ag.logger.Warnf(providers.TypeSource, "%s failed: %v", a.Name(), err)
		ag.metrics.IncSourceFailures(a.Name())
		return models.FetchResult{}
	}
	return res
}

func (ag *Aggregator) sourcesUsed(articles []models.Article) []string {
	contributed := make(map[string]bool, len(ag.adapters))
	for _, art := range articles {
		contributed[art.ProviderName] = true
	}
	used := make([]string, 0, len(contributed))
	for _, a := range ag.adapters {
		if contributed[a.Name()] {
			used = append(used, a.Name())
		}
	}
	return used
}

func (ag *Aggregator) cachedResult(key string) (models.AggregateResult, bool) {
	data, ok := ag.cache.Get(key)
	if !ok {
		return models.AggregateResult{}, false
	}
	var res models.AggregateResult
	if err := json.Unmarshal(data, &res); err != nil {
		ag.logger.Warnf(providers.TypeApp, "discarding cached %s: %v", key, err)
		return models.AggregateResult{}, false
	}
	return res, true
}

func (ag *Aggregator) storeResult(key string, res models.AggregateResult) {
	data, err := json.Marshal(res)
	if err != nil {
		ag.logger.Errorf(providers.TypeApp, "cache encode %s: %v", key, err)
		return
	}
	ag.cache.Set(key, data)
}
