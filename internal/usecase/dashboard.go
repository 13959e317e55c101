package usecase

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"CoinSignals/internal/domain/models"
	applogger "CoinSignals/pkg/logger"
)

// DashboardUseCase joins the current signals with each coin's full history.
type DashboardUseCase struct {
	signals     *SignalsUseCase
	history     *HistoryUseCase
	logger      *applogger.Logger
	concurrency int
}

func NewDashboardUseCase(signals *SignalsUseCase, history *HistoryUseCase, l *applogger.Logger, concurrency int) *DashboardUseCase {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &DashboardUseCase{signals: signals, history: history, logger: l, concurrency: concurrency}
}

// Build fetches histories with bounded concurrency. A failed history keeps its
// entry with empty series and is reported in Errors; entry order follows the
// signal ranking.
func (uc *DashboardUseCase) Build(ctx context.Context, days int) models.Dashboard {
	batch := uc.signals.GetSignals(ctx)
	res := models.Dashboard{
		Signals:  batch,
		Entries:  make([]models.DashboardEntry, len(batch.Signals)),
		Degraded: batch.Degraded,
	}
	for k, v := range batch.Errors {
		addError(&res, k, v)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)
	for i, sig := range batch.Signals {
		g.Go(func() error {
			h, err := uc.history.FullHistory(gctx, sig.ID, days)
			if err != nil {
				mu.Lock()
				addError(&res, sig.ID, err.Error())
				mu.Unlock()
			}
			res.Entries[i] = models.DashboardEntry{Signal: sig, History: h}
			return nil
		})
	}
	_ = g.Wait()

	if len(res.Errors) > 0 {
		res.Degraded = true
		uc.logger.Warn("dashboard degraded", applogger.Int("errors", len(res.Errors)))
	}
	return res
}

func addError(d *models.Dashboard, key, msg string) {
	if d.Errors == nil {
		d.Errors = make(map[string]string)
	}
	d.Errors[key] = msg
}
