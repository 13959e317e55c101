package usecase

import (
	"context"
	"time"

	"CoinSignals/internal/domain/models"
	domrepo "CoinSignals/internal/domain/repository"
	applogger "CoinSignals/pkg/logger"
)

// SignalsUseCase fetches the market listing and ranks it into signals.
type SignalsUseCase struct {
	provider   domrepo.MarketDataProvider
	agg        *SignalAggregator
	metrics    domrepo.Metrics
	logger     *applogger.Logger
	vsCurrency string
	perPage    int
	timeout    time.Duration
	now        func() time.Time
}

func NewSignalsUseCase(provider domrepo.MarketDataProvider, agg *SignalAggregator, metrics domrepo.Metrics, l *applogger.Logger, vsCurrency string, perPage int) *SignalsUseCase {
	if vsCurrency == "" {
		vsCurrency = "usd"
	}
	if perPage <= 0 {
		perPage = 250
	}
	return &SignalsUseCase{
		provider:   provider,
		agg:        agg,
		metrics:    metrics,
		logger:     l,
		vsCurrency: vsCurrency,
		perPage:    perPage,
		timeout:    20 * time.Second,
		now:        time.Now,
	}
}

// GetSignals never fails: a provider error yields an empty, degraded batch.
func (uc *SignalsUseCase) GetSignals(ctx context.Context) models.SignalBatch {
	start := uc.now()
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	res := models.SignalBatch{
		Timestamp: start,
		Signals:   []models.Signal{},
	}

	snaps, err := uc.provider.ListMarkets(ctx, uc.vsCurrency, uc.perPage, 1)
	if err != nil {
		uc.logger.Error("signals: list markets failed", applogger.Error(err))
		uc.metrics.RecordError("provider")
		res.Degraded = true
		res.Errors = map[string]string{"markets": err.Error()}
		return res
	}

	res.Signals = uc.agg.Aggregate(snaps)

	counts := map[models.SignalType]int{}
	for _, s := range res.Signals {
		counts[s.Type]++
		uc.metrics.RecordLastPrice(s.Pair, s.EntryPrice)
	}
	for t, n := range counts {
		uc.metrics.RecordSignals(string(t), n)
	}
	uc.metrics.RecordLatency("signals", time.Since(start).Seconds())

	uc.logger.Debug("signals generated",
		applogger.Int("markets", len(snaps)),
		applogger.Int("signals", len(res.Signals)),
	)
	return res
}
