package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"techpulse/internal/models"
	"techpulse/internal/providers"
	"techpulse/internal/structures"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const maxResponseBytes = 8 << 20

var (
	ErrHTTPStatus     = errors.New("unexpected http status")
	ErrProviderStatus = errors.New("provider reported failure")
	ErrNoResults      = errors.New("response has no results list")
)

// RESTAdapter applies a ProviderSpec row to a JSON REST API.
type RESTAdapter struct {
	spec    ProviderSpec
	apiKey  string
	baseURL string
	client  *http.Client
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	now     func() time.Time
}

func NewRESTAdapter(spec ProviderSpec, conf structures.SourceConfig, client *http.Client, logger providers.Logger, metrics providers.MetricsProviderInterface) *RESTAdapter {
	base := spec.BaseURL
	if conf.BaseURL != "" {
		base = conf.BaseURL
	}
	return &RESTAdapter{
		spec:    spec,
		apiKey:  conf.APIKey,
		baseURL: strings.TrimRight(base, "/"),
		client:  client,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

func (a *RESTAdapter) Name() string  { return a.spec.Name }
func (a *RESTAdapter) Key() string   { return a.spec.Key }
func (a *RESTAdapter) Label() string { return a.spec.Label }
func (a *RESTAdapter) Enabled() bool { return a.apiKey != "" }

// Fetch never returns an error: a failed call is logged, counted and
// degraded to an empty result.
func (a *RESTAdapter) Fetch(ctx context.Context, q models.Query) (models.FetchResult, error) {
	if !a.Enabled() {
		return models.FetchResult{}, nil
	}

	start := time.Now()
	result, err := a.fetch(ctx, q)
	if err != nil {
		a.logger.Warnf(providers.TypeSource, "%s: %v", a.spec.Name, redact(err))
		a.metrics.IncSourceFailures(a.spec.Name)
		return models.FetchResult{}, nil
	}

	a.metrics.ObserveSourceFetch(a.spec.Name, len(result.Articles), time.Since(start))
	a.logger.Debugf(providers.TypeSource, "%s: %d articles (total %d)", a.spec.Name, len(result.Articles), result.Total)
	return result, nil
}

func (a *RESTAdapter) requestURL(q models.Query) string {
	ep := a.spec.Headlines
	value := q.Category
	if q.Text != "" {
		ep = a.spec.Search
		value = q.Text
	} else if value == "" {
		value = "technology"
	}

	params := url.Values{}
	for k, v := range ep.Fixed {
		params.Set(k, v)
	}
	params.Set(ep.Param, value)
	if a.spec.PageParam != "" && q.Page > 0 {
		params.Set(a.spec.PageParam, strconv.Itoa(q.Page))
	}
	params.Set(a.spec.KeyParam, a.apiKey)

	return a.baseURL + ep.Path + "?" + params.Encode()
}

func (a *RESTAdapter) fetch(ctx context.Context, q models.Query) (models.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.requestURL(q), nil)
	if err != nil {
		return models.FetchResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return models.FetchResult{}, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.FetchResult{}, fmt.Errorf("%w: %d", ErrHTTPStatus, resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return models.FetchResult{}, fmt.Errorf("decode response: %w", err)
	}

	if a.spec.StatusPath != "" {
		if status := cast.ToString(lookup(body, a.spec.StatusPath)); status != a.spec.StatusOK {
			return models.FetchResult{}, fmt.Errorf("%w: status %q", ErrProviderStatus, status)
		}
	}

	raw, ok := lookup(body, a.spec.ResultsPath).([]interface{})
	if !ok {
		return models.FetchResult{}, ErrNoResults
	}

	fetchedAt := a.now().UTC()
	articles := make([]models.Article, 0, len(raw))
	for _, item := range raw {
		if _, isObject := item.(map[string]interface{}); !isObject {
			continue
		}
		if art, keep := a.spec.normalize(item, fetchedAt); keep {
			articles = append(articles, art)
		}
	}

	total := cast.ToInt(lookup(body, a.spec.TotalPath))
	if total == 0 {
		total = len(raw)
	}

	return models.FetchResult{Articles: articles, Total: total}, nil
}

// redact drops the request URL from transport errors; it carries the api key.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
