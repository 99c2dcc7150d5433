package sources

import (
	"context"
	"net/http"
	"techpulse/internal/models"
	"techpulse/internal/providers"
	"techpulse/internal/structures"
)

// Adapter fetches one provider and maps its results into models.Article.
// A disabled adapter returns an empty result without touching the network.
type Adapter interface {
	Name() string
	Key() string
	Label() string
	Enabled() bool
	Fetch(ctx context.Context, q models.Query) (models.FetchResult, error)
}

func NewHTTPClient(conf *structures.Config) *http.Client {
	return &http.Client{Timeout: conf.Aggregator.Timeout}
}

func sourceConfig(conf *structures.Config, key string) structures.SourceConfig {
	switch key {
	case KeyNewsAPI:
		return conf.Sources.NewsAPI
	case KeyGNews:
		return conf.Sources.GNews
	case KeyCurrents:
		return conf.Sources.Currents
	case KeyNewsData:
		return conf.Sources.NewsData
	}
	return structures.SourceConfig{}
}

// NewAdapters builds one adapter per ProviderSpecs row, in canonical order.
func NewAdapters(conf *structures.Config, client *http.Client, logger providers.Logger, metrics providers.MetricsProviderInterface) []Adapter {
	adapters := make([]Adapter, 0, len(ProviderSpecs))
	for _, spec := range ProviderSpecs {
		a := NewRESTAdapter(spec, sourceConfig(conf, spec.Key), client, logger, metrics)
		if !a.Enabled() {
			logger.Infof(providers.TypeSource, "%s disabled: no api key", spec.Name)
		}
		adapters = append(adapters, a)
	}
	return adapters
}
