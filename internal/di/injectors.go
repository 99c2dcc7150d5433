//go:build wireinject
// +build wireinject

package di

import (
	"techpulse/internal"
	"techpulse/internal/aggregator"
	"techpulse/internal/controllers"
	"techpulse/internal/enrichment"
	"techpulse/internal/persistence"
	"techpulse/internal/persistence/interfaces"
	"techpulse/internal/providers"
	"techpulse/internal/search"
	"techpulse/internal/sources"
	"techpulse/internal/state"
	"techpulse/internal/structures"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		sources.NewHTTPClient,
		sources.NewAdapters,
		aggregator.NewAggregator,
		wire.Bind(new(aggregator.AggregatorInterface), new(*aggregator.Aggregator)),
		search.NewDebouncer,
		wire.Bind(new(search.DebouncerInterface), new(*search.Debouncer)),
		enrichment.NewGeminiClient,
		wire.Bind(new(enrichment.Client), new(*enrichment.GeminiClient)),

		persistence.NewZstdCompressor,
		persistence.NewFileManager,
		wire.Bind(new(interfaces.SnapshotPersisterInterface), new(*persistence.FileManager)),
		state.NewStore,
		wire.Bind(new(state.StoreInterface), new(*state.Store)),
		wire.Bind(new(interfaces.SnapshotStoreInterface), new(*state.Store)),
		persistence.NewScheduler,

		controllers.NewApiController,
		controllers.NewStateController,
		controllers.NewAIController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
