package usecase

import (
	"context"
	"time"

	"CoinSignals/internal/domain/models"
	domrepo "CoinSignals/internal/domain/repository"
	domsvc "CoinSignals/internal/domain/service"
	applogger "CoinSignals/pkg/logger"
)

// HistoryUseCase loads a coin's price history and computes its indicators.
type HistoryUseCase struct {
	provider   domrepo.MarketDataProvider
	calculator domsvc.IndicatorCalculator
	metrics    domrepo.Metrics
	logger     *applogger.Logger
}

func NewHistoryUseCase(provider domrepo.MarketDataProvider, calculator domsvc.IndicatorCalculator, metrics domrepo.Metrics, l *applogger.Logger) *HistoryUseCase {
	return &HistoryUseCase{provider: provider, calculator: calculator, metrics: metrics, logger: l}
}

// FullHistory returns prices, volumes and indicators for id over days.
// Out-of-range windows fall back to 90 days. Provider errors are returned as is.
func (uc *HistoryUseCase) FullHistory(ctx context.Context, id string, days int) (models.FullHistory, error) {
	start := time.Now()
	window := domrepo.NormalizeHistoryDays(days, domrepo.FullHistoryDays)

	ts, err := uc.provider.PriceHistory(ctx, id, int(window))
	if err != nil {
		uc.metrics.RecordError("history")
		uc.logger.Warn("history: price history failed",
			applogger.String("id", id),
			applogger.Int("days", int(window)),
			applogger.Error(err),
		)
		return models.FullHistory{ID: id}, err
	}

	prices := ts.Prices()
	out := models.FullHistory{
		ID:         id,
		Prices:     prices,
		Volumes:    ts.Volumes(),
		Indicators: uc.calculator.Compute(prices),
	}
	uc.metrics.RecordLatency("history", time.Since(start).Seconds())
	return out, nil
}

// PriceSeries returns only the closing prices, used for the simple price chart.
func (uc *HistoryUseCase) PriceSeries(ctx context.Context, id string, days int) ([]float64, error) {
	window := domrepo.NormalizeHistoryDays(days, domrepo.ChartHistoryDays)
	ts, err := uc.provider.PriceHistory(ctx, id, int(window))
	if err != nil {
		uc.metrics.RecordError("chart")
		return nil, err
	}
	return ts.Prices(), nil
}
