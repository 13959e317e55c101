//go:build wireinject
// +build wireinject

package di

import (
	"CoinSignals/internal/handler/api"
	"CoinSignals/internal/usecase"
	"CoinSignals/internal/view"
	"CoinSignals/pkg/config"
	"CoinSignals/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Infrastructure
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideMetrics,
		ProvideLimiter,
		ProvideCacheStore,

		// Market data
		ProvideCoinGeckoClient,
		ProvideMarketDataProvider,
		ProvideSignalPublisher,

		// Domain services and use cases
		ProvideSignalAggregator,
		ProvideIndicatorCalculator,
		ProvideSignalsUseCase,
		ProvideMarketsUseCase,
		usecase.NewHistoryUseCase,
		ProvideDashboardUseCase,

		// Transport
		view.NewSurface,
		api.NewSignalsEchoHandler,
		ProvideHub,
		ProvideScheduler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil, nil
}
