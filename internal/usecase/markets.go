package usecase

import (
	"context"
	"strings"
	"time"

	"CoinSignals/internal/domain/models"
	domrepo "CoinSignals/internal/domain/repository"
	applogger "CoinSignals/pkg/logger"
)

// MarketsUseCase serves the market overview: large caps only, symbol upper-cased.
type MarketsUseCase struct {
	provider     domrepo.MarketDataProvider
	metrics      domrepo.Metrics
	logger       *applogger.Logger
	vsCurrency   string
	perPage      int
	minMarketCap float64
}

func NewMarketsUseCase(provider domrepo.MarketDataProvider, metrics domrepo.Metrics, l *applogger.Logger, vsCurrency string, perPage int, minMarketCap float64) *MarketsUseCase {
	return &MarketsUseCase{
		provider:     provider,
		metrics:      metrics,
		logger:       l,
		vsCurrency:   vsCurrency,
		perPage:      perPage,
		minMarketCap: minMarketCap,
	}
}

// TopMarkets returns up to limit markets with a cap above the configured floor.
// Provider errors degrade to an empty list.
func (uc *MarketsUseCase) TopMarkets(ctx context.Context, limit int) []models.TopMarket {
	start := time.Now()
	snaps, err := uc.provider.ListMarkets(ctx, uc.vsCurrency, uc.perPage, 1)
	if err != nil {
		uc.logger.Error("markets: list markets failed", applogger.Error(err))
		uc.metrics.RecordError("provider")
		return []models.TopMarket{}
	}

	out := make([]models.TopMarket, 0, len(snaps))
	for _, s := range snaps {
		if s.MarketCap <= uc.minMarketCap {
			continue
		}
		out = append(out, models.TopMarket{
			ID:                s.ID,
			Name:              s.Name,
			Symbol:            strings.ToUpper(s.Symbol),
			CurrentPrice:      s.CurrentPrice,
			MarketCap:         s.MarketCap,
			PriceChangePct24h: s.PriceChangePct24h,
			Rank:              s.Rank,
		})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	uc.metrics.RecordLatency("markets", time.Since(start).Seconds())
	return out
}
