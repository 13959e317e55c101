package cache

import (
	"context"
	"fmt"
	"time"

	"CoinSignals/internal/domain/models"
	"CoinSignals/internal/domain/repository"
	smetrics "CoinSignals/internal/service/metrics"
	applogger "CoinSignals/pkg/logger"
)

// MarketProvider caches responses of another MarketDataProvider.
// Cache failures never fail a request; they fall through to the wrapped provider.
type MarketProvider struct {
	next       repository.MarketDataProvider
	store      BytesCache
	marketsTTL time.Duration
	historyTTL time.Duration
	logger     *applogger.Logger
}

func NewMarketProvider(next repository.MarketDataProvider, store BytesCache, marketsTTL, historyTTL time.Duration, l *applogger.Logger) *MarketProvider {
	if l == nil {
		l = applogger.Nop()
	}
	return &MarketProvider{next: next, store: store, marketsTTL: marketsTTL, historyTTL: historyTTL, logger: l}
}

func (p *MarketProvider) ListMarkets(ctx context.Context, vsCurrency string, perPage, page int) ([]models.MarketSnapshot, error) {
	key := fmt.Sprintf("markets:%s:%d:%d", vsCurrency, perPage, page)
	return through(ctx, p, "markets", key, p.marketsTTL, func() ([]models.MarketSnapshot, error) {
		return p.next.ListMarkets(ctx, vsCurrency, perPage, page)
	})
}

func (p *MarketProvider) PriceHistory(ctx context.Context, id string, days int) (models.TimeSeries, error) {
	key := fmt.Sprintf("history:%s:%d", id, days)
	return through(ctx, p, "history", key, p.historyTTL, func() (models.TimeSeries, error) {
		return p.next.PriceHistory(ctx, id, days)
	})
}

// through serves key from the store or calls load and stores its result.
// Errors from load are returned as-is and never cached.
func through[T any](ctx context.Context, p *MarketProvider, endpoint, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	v, hit, err := GetJSON[T](ctx, p.store, key)
	if err != nil {
		p.logger.Warn("cache get failed", applogger.String("key", key), applogger.Error(err))
	}
	smetrics.ObserveCache(endpoint, hit)
	if hit {
		return v, nil
	}

	v, err = load()
	if err != nil {
		var zero T
		return zero, err
	}
	if err := SetJSON(ctx, p.store, key, v, ttl); err != nil {
		p.logger.Warn("cache set failed", applogger.String("key", key), applogger.Error(err))
	}
	return v, nil
}
