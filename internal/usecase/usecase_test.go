package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"CoinSignals/internal/domain/models"
	"CoinSignals/internal/services/indicators"
	"CoinSignals/internal/services/signals"
	applogger "CoinSignals/pkg/logger"
	"CoinSignals/pkg/metrics"
)

type fakeProvider struct {
	mu        sync.Mutex
	markets   []models.MarketSnapshot
	listErr   error
	histories map[string]models.TimeSeries
	days      []int
}

func (f *fakeProvider) ListMarkets(_ context.Context, _ string, _, _ int) ([]models.MarketSnapshot, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.markets, nil
}

func (f *fakeProvider) PriceHistory(_ context.Context, id string, days int) (models.TimeSeries, error) {
	f.mu.Lock()
	f.days = append(f.days, days)
	f.mu.Unlock()
	ts, ok := f.histories[id]
	if !ok {
		return models.TimeSeries{}, fmt.Errorf("history %s: %w", id, models.ErrNotFound)
	}
	return ts, nil
}

func snap(id string, change, mcap float64) models.MarketSnapshot {
	return models.MarketSnapshot{
		ID:                id,
		Symbol:            id,
		Name:              id,
		CurrentPrice:      100,
		PriceChangePct24h: change,
		Volume24h:         mcap / 10,
		MarketCap:         mcap,
	}
}

func series(n int) models.TimeSeries {
	ts := models.TimeSeries{}
	for i := range n {
		ts.Points = append(ts.Points, models.PricePoint{
			Time:   time.Unix(int64(i)*3600, 0).UTC(),
			Price:  100 + float64(i%7),
			Volume: 1000,
		})
	}
	return ts
}

func newAggregator() *SignalAggregator {
	return NewSignalAggregator(signals.NewClassifier(signals.DefaultThresholds()), signals.NewProjector(), DefaultAggregatorConfig())
}

func TestAggregateFiltersAndRanks(t *testing.T) {
	in := []models.MarketSnapshot{
		snap("small", 30, 5_000_000), // cap not strictly above the floor
		snap("flat", 2, 1e9),
		snap("buy", 10, 1e9),
		snap("sell", -20, 1e9),
		snap("novol", 15, 1e9),
	}
	in[4].Volume24h = 0

	out := newAggregator().Aggregate(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 signals, got %d: %+v", len(out), out)
	}
	if out[0].ID != "sell" || out[1].ID != "buy" {
		t.Fatalf("unexpected order: %s, %s", out[0].ID, out[1].ID)
	}
	if out[0].Type != models.SignalSell || out[1].Type != models.SignalBuy {
		t.Fatalf("unexpected types: %s, %s", out[0].Type, out[1].Type)
	}
}

func TestAggregateCapsAtTopNAndIsStable(t *testing.T) {
	var in []models.MarketSnapshot
	for i := range 30 {
		in = append(in, snap(fmt.Sprintf("c%02d", i), 10, 1e9))
	}
	out := newAggregator().Aggregate(in)
	if len(out) != 20 {
		t.Fatalf("expected 20 signals, got %d", len(out))
	}
	for i, s := range out {
		if want := fmt.Sprintf("c%02d", i); s.ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, s.ID)
		}
	}
}

func TestAggregateSortedByAbsoluteGain(t *testing.T) {
	in := []models.MarketSnapshot{snap("a", 8, 1e9), snap("b", -12, 1e9), snap("c", 30, 1e9), snap("d", -9, 1e9)}
	out := newAggregator().Aggregate(in)
	for i := 1; i < len(out); i++ {
		if math.Abs(out[i-1].PotentialGainPct) < math.Abs(out[i].PotentialGainPct) {
			t.Fatalf("not sorted at %d: %v then %v", i, out[i-1].PotentialGainPct, out[i].PotentialGainPct)
		}
	}
	if out[0].ID != "c" {
		t.Fatalf("expected c first, got %s", out[0].ID)
	}
}

func TestGetSignalsDegradesOnProviderError(t *testing.T) {
	p := &fakeProvider{listErr: models.ErrProviderUnavailable}
	uc := NewSignalsUseCase(p, newAggregator(), metrics.Nop{}, applogger.Nop(), "usd", 250)

	res := uc.GetSignals(context.Background())
	if !res.Degraded {
		t.Fatalf("expected degraded batch")
	}
	if res.Signals == nil || len(res.Signals) != 0 {
		t.Fatalf("expected empty non-nil signals, got %v", res.Signals)
	}
	if _, ok := res.Errors["markets"]; !ok {
		t.Fatalf("expected markets error, got %v", res.Errors)
	}
}

func TestGetSignals(t *testing.T) {
	p := &fakeProvider{markets: []models.MarketSnapshot{snap("bitcoin", 9, 1e12)}}
	uc := NewSignalsUseCase(p, newAggregator(), metrics.Nop{}, applogger.Nop(), "", 0)

	res := uc.GetSignals(context.Background())
	if res.Degraded || len(res.Signals) != 1 {
		t.Fatalf("unexpected batch: %+v", res)
	}
	if res.Signals[0].Pair != "BITCOIN/USDT" {
		t.Fatalf("unexpected pair %q", res.Signals[0].Pair)
	}
	if res.Timestamp.IsZero() {
		t.Fatalf("expected timestamp")
	}
}

func TestTopMarkets(t *testing.T) {
	p := &fakeProvider{markets: []models.MarketSnapshot{
		{ID: "bitcoin", Symbol: "btc", MarketCap: 1e12},
		{ID: "tiny", Symbol: "tny", MarketCap: 50_000_000},
		{ID: "ethereum", Symbol: "eth", MarketCap: 4e11},
		{ID: "solana", Symbol: "sol", MarketCap: 8e10},
	}}
	uc := NewMarketsUseCase(p, metrics.Nop{}, applogger.Nop(), "usd", 250, 50_000_000)

	out := uc.TopMarkets(context.Background(), 2)
	if len(out) != 2 {
		t.Fatalf("expected 2 markets, got %d", len(out))
	}
	if out[0].Symbol != "BTC" || out[1].ID != "ethereum" {
		t.Fatalf("unexpected markets: %+v", out)
	}

	p.listErr = errors.New("boom")
	if got := uc.TopMarkets(context.Background(), 10); got == nil || len(got) != 0 {
		t.Fatalf("expected empty list on error, got %v", got)
	}
}

func TestFullHistoryNormalizesWindow(t *testing.T) {
	p := &fakeProvider{histories: map[string]models.TimeSeries{"bitcoin": series(60)}}
	uc := NewHistoryUseCase(p, indicators.NewCalculator(indicators.DefaultOptions()), metrics.Nop{}, applogger.Nop())

	h, err := uc.FullHistory(context.Background(), "bitcoin", 0)
	if err != nil {
		t.Fatalf("FullHistory: %v", err)
	}
	if p.days[0] != 90 {
		t.Fatalf("expected default 90 days, got %d", p.days[0])
	}
	if len(h.Prices) != 60 || len(h.Volumes) != 60 {
		t.Fatalf("unexpected lengths %d/%d", len(h.Prices), len(h.Volumes))
	}
	if len(h.Indicators.SMA) != 41 || len(h.Indicators.EMA) != 60 {
		t.Fatalf("unexpected indicator lengths sma=%d ema=%d", len(h.Indicators.SMA), len(h.Indicators.EMA))
	}

	if _, err := uc.FullHistory(context.Background(), "missing", 30); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDashboardKeepsFailedEntries(t *testing.T) {
	p := &fakeProvider{
		markets: []models.MarketSnapshot{snap("a", 20, 1e9), snap("b", 10, 1e9), snap("c", -15, 1e9)},
		histories: map[string]models.TimeSeries{
			"a": series(30),
			"c": series(30),
		},
	}
	signalsUC := NewSignalsUseCase(p, newAggregator(), metrics.Nop{}, applogger.Nop(), "usd", 250)
	historyUC := NewHistoryUseCase(p, indicators.NewCalculator(indicators.DefaultOptions()), metrics.Nop{}, applogger.Nop())
	uc := NewDashboardUseCase(signalsUC, historyUC, applogger.Nop(), 2)

	d := uc.Build(context.Background(), 90)
	if len(d.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(d.Entries))
	}
	want := []string{"a", "c", "b"}
	for i, e := range d.Entries {
		if e.Signal.ID != want[i] {
			t.Fatalf("entry %d: expected %s, got %s", i, want[i], e.Signal.ID)
		}
	}
	if !d.Degraded {
		t.Fatalf("expected degraded dashboard")
	}
	if _, ok := d.Errors["b"]; !ok || len(d.Errors) != 1 {
		t.Fatalf("unexpected errors: %v", d.Errors)
	}
	if len(d.Entries[2].History.Prices) != 0 || d.Entries[2].History.ID != "b" {
		t.Fatalf("expected empty history for b, got %+v", d.Entries[2].History)
	}
	if len(d.Entries[0].History.Prices) != 30 {
		t.Fatalf("expected prices for a")
	}
}
