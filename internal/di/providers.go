package di

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"CoinSignals/internal/domain/repository"
	domsvc "CoinSignals/internal/domain/service"
	"CoinSignals/internal/handler/api"
	"CoinSignals/internal/handler/ws"
	internalrepo "CoinSignals/internal/repository"
	"CoinSignals/internal/scheduler"
	"CoinSignals/internal/service/cache"
	"CoinSignals/internal/service/coingecko"
	provmetrics "CoinSignals/internal/service/metrics"
	"CoinSignals/internal/service/ratelimit"
	"CoinSignals/internal/services/indicators"
	"CoinSignals/internal/services/signals"
	"CoinSignals/internal/usecase"
	"CoinSignals/pkg/config"
	xhttp "CoinSignals/pkg/http"
	"CoinSignals/pkg/http/middleware"
	pkgkafka "CoinSignals/pkg/kafka"
	applogger "CoinSignals/pkg/logger"
	"CoinSignals/pkg/metrics"
	"CoinSignals/pkg/server"
)

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
// The cleanup closes it if a later provider fails; App shutdown closes it
// through the signal publisher first, and Close is idempotent.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithClientID(cfg.Kafka.ClientID),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.Producer.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithAutoCreateTopic(cfg.Environment != "production"),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, func() { _ = producer.Close() }, nil
}

// ProvideLogger builds the application logger. Repeated errors are aggregated
// to Kafka when the collector is enabled and a producer exists. The cleanup
// stops the collector before the producer is closed.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, func(), error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	if cfg.Logging.Collector.Enabled && producer != nil {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Logging.Collector.Interval,
			CountThreshold: cfg.Logging.Collector.CountThreshold,
			MinLevel:       cfg.Logging.Collector.MinLevel,
			Topic:          cfg.Logging.Collector.Topic,
			Source:         cfg.Kafka.ClientID,
			Publisher:      producer,
		})
	}
	return l, l.RemoveCollector, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Nop{}
	}
	provmetrics.Register()
	return metrics.New()
}

func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideCacheStore returns the in-process cache, layered over Redis when enabled.
func ProvideCacheStore(cfg *config.Config, l *applogger.Logger) (cache.BytesCache, func(), error) {
	local := cache.NewTTLCache()
	if !cfg.Cache.Redis.Enabled {
		return local, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	shared, err := cache.OpenRedisCache(ctx, cache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
		Prefix:   cfg.Cache.Prefix,
		Timeout:  cfg.Cache.Redis.Timeout,
	})
	if err != nil {
		return nil, nil, err
	}
	l.Info("redis cache connected", applogger.String("addr", cfg.Cache.Redis.Addr))

	cleanup := func() {
		if err := shared.Close(); err != nil {
			l.Warn("redis close error", applogger.Error(err))
		}
	}
	return cache.NewLayered(local, shared), cleanup, nil
}

func ProvideCoinGeckoClient(cfg *config.Config, limiter *ratelimit.Limiter, l *applogger.Logger) *coingecko.Client {
	httpClient := coingecko.NewHTTPClient(
		cfg.CoinGecko.Timeout,
		cfg.CoinGecko.UserAgent,
		cfg.CoinGecko.APIKeyHdr,
		cfg.CoinGecko.APIKey,
	)
	return coingecko.New(httpClient, cfg.CoinGecko.BaseURL,
		coingecko.WithVsCurrency(cfg.CoinGecko.VsCurrency),
		coingecko.WithRateLimit(limiter, cfg.CoinGecko.RateLimit.Burst, cfg.CoinGecko.RateLimit.RefillPerSec),
		coingecko.WithLogger(l),
	)
}

// ProvideMarketDataProvider wraps the CoinGecko client with the response cache.
func ProvideMarketDataProvider(cfg *config.Config, client *coingecko.Client, store cache.BytesCache, l *applogger.Logger) repository.MarketDataProvider {
	if !cfg.Cache.Enabled {
		return client
	}
	return cache.NewMarketProvider(client, store, cfg.Cache.MarketsTTL, cfg.Cache.HistoryTTL, l)
}

// ProvideSignalPublisher publishes to Kafka when a producer exists.
func ProvideSignalPublisher(cfg *config.Config, producer *pkgkafka.Producer) repository.SignalPublisher {
	if producer == nil {
		return internalrepo.NoopSignalPublisher{}
	}
	return internalrepo.NewKafkaSignalPublisher(producer, cfg.Kafka.Topic)
}

func ProvideSignalAggregator(cfg *config.Config) *usecase.SignalAggregator {
	c := cfg.Signals.Classifier
	classifier := signals.NewClassifier(signals.Thresholds{
		PriceChangePct:   c.PriceChangePct,
		MinVolumeRatio:   c.MinVolumeRatio,
		ConfidenceFactor: c.ConfidenceFactor,
		MaxConfidence:    c.MaxConfidence,
	})
	return usecase.NewSignalAggregator(classifier, signals.NewProjector(), usecase.AggregatorConfig{
		MinMarketCap:  cfg.Signals.MinMarketCap,
		MinAbsGainPct: cfg.Signals.MinAbsGainPct,
		TopN:          cfg.Signals.TopN,
	})
}

func ProvideIndicatorCalculator(cfg *config.Config) domsvc.IndicatorCalculator {
	o := cfg.Signals.Indicators
	return indicators.NewCalculator(indicators.Options{
		SMAPeriod:       o.SMAPeriod,
		EMAPeriod:       o.EMAPeriod,
		RSIPeriod:       o.RSIPeriod,
		BollingerPeriod: o.BollingerPeriod,
		BollingerK:      o.BollingerK,
	})
}

func ProvideSignalsUseCase(
	cfg *config.Config,
	provider repository.MarketDataProvider,
	agg *usecase.SignalAggregator,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.SignalsUseCase {
	return usecase.NewSignalsUseCase(provider, agg, m, l, cfg.CoinGecko.VsCurrency, cfg.Signals.PerPage)
}

func ProvideMarketsUseCase(
	cfg *config.Config,
	provider repository.MarketDataProvider,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.MarketsUseCase {
	return usecase.NewMarketsUseCase(provider, m, l, cfg.CoinGecko.VsCurrency, cfg.Signals.TopMarketsPage, cfg.Signals.TopMarketsCap)
}

func ProvideDashboardUseCase(
	cfg *config.Config,
	signalsUC *usecase.SignalsUseCase,
	historyUC *usecase.HistoryUseCase,
	l *applogger.Logger,
) *usecase.DashboardUseCase {
	return usecase.NewDashboardUseCase(signalsUC, historyUC, l, cfg.Signals.DashboardConcurrency)
}

func ProvideHub(cfg *config.Config, l *applogger.Logger) *ws.Hub {
	return ws.NewHub(ws.Config{
		Path:         cfg.WebSocket.Path,
		PingInterval: cfg.WebSocket.PingInterval,
		WriteTimeout: cfg.WebSocket.WriteTimeout,
		SendBuffer:   cfg.WebSocket.SendBuffer,
	}, l.With(applogger.String("component", "ws")))
}

// ProvideScheduler registers the refresh job when scheduling is enabled.
func ProvideScheduler(
	cfg *config.Config,
	signalsUC *usecase.SignalsUseCase,
	hub *ws.Hub,
	publisher repository.SignalPublisher,
	l *applogger.Logger,
) (*scheduler.Scheduler, error) {
	s := scheduler.New(signalsUC, hub, publisher, l.With(applogger.String("component", "scheduler")))
	if cfg.Scheduler.Enabled {
		if err := s.Register(cfg.Scheduler.Spec); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func ProvideHTTPServer(
	cfg *config.Config,
	l *applogger.Logger,
	limiter *ratelimit.Limiter,
	signalsHandler *api.SignalsEchoHandler,
	hub *ws.Hub,
) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	origins := cfg.Server.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return xhttp.NewServer(l, []xhttp.Handler{signalsHandler, hub},
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(true, origins...),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithRateLimit(limiter, middleware.RateLimitConfig{
			Burst:        cfg.Server.RateLimit.Burst,
			RefillPerSec: cfg.Server.RateLimit.RefillPerSec,
			Skip: func(c echo.Context) bool {
				return c.Path() == cfg.WebSocket.Path || c.Path() == "/healthz" || c.Path() == metricsPath
			},
		}),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	sched *scheduler.Scheduler,
	hub *ws.Hub,
	publisher repository.SignalPublisher,
) *server.App {
	return server.New(cfg, l, httpServer, sched, hub, publisher)
}
