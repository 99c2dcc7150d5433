package search

import (
	"context"
	"errors"
	"sync"
	"techpulse/internal/models"
	"techpulse/internal/providers"
	"techpulse/internal/structures"
	"time"
)

const defaultClient = "default"

var ErrSuperseded = errors.New("search superseded by a newer query")

type SearchFunc func(ctx context.Context, query string) []models.Article

type DebouncerInterface interface {
	Do(ctx context.Context, clientKey, query string, fn SearchFunc) ([]models.Article, error)
}

// Debouncer coalesces keystroke searches per client. Only the newest query
// of a burst reaches fn, and a result that lands after a newer query was
// issued is dropped.
type Debouncer struct {
	window time.Duration
	logger providers.Logger

	mu      sync.Mutex
	clients map[string]*Generation
}

func NewDebouncer(conf *structures.Config, logger providers.Logger) *Debouncer {
	return &Debouncer{
		window:  conf.Aggregator.SearchDebounce,
		logger:  logger,
		clients: make(map[string]*Generation),
	}
}

func (d *Debouncer) register(clientKey string) (*Generation, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	gen, ok := d.clients[clientKey]
	if !ok {
		gen = &Generation{}
		d.clients[clientKey] = gen
	}
	return gen, gen.Next()
}

// release forgets the client once its newest call has finished.
func (d *Debouncer) release(clientKey string, gen *Generation, token uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.clients[clientKey] == gen && gen.IsCurrent(token) {
		delete(d.clients, clientKey)
	}
}

func (d *Debouncer) Do(ctx context.Context, clientKey, query string, fn SearchFunc) ([]models.Article, error) {
	if clientKey == "" {
		clientKey = defaultClient
	}
	gen, token := d.register(clientKey)
	defer d.release(clientKey, gen, token)

	if d.window > 0 {
		timer := time.NewTimer(d.window)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if !gen.IsCurrent(token) {
		return nil, ErrSuperseded
	}

	articles := fn(ctx, query)

	if !gen.IsCurrent(token) {
		d.logger.Debugf(providers.TypeGet, "dropping stale results for %q (client %s)", query, clientKey)
		return nil, ErrSuperseded
	}
	return articles, nil
}
