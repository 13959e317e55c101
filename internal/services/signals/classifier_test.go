package signals

import (
	"testing"

	"CoinSignals/internal/domain/models"
)

func snapshot(change, volume, mcap float64) models.MarketSnapshot {
	return models.MarketSnapshot{
		ID:                "bitcoin",
		Symbol:            "btc",
		Name:              "Bitcoin",
		CurrentPrice:      100,
		PriceChangePct24h: change,
		Volume24h:         volume,
		MarketCap:         mcap,
	}
}

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	cases := []struct {
		name       string
		snap       models.MarketSnapshot
		wantType   models.SignalType
		wantConfid int
	}{
		{"strong rise", snapshot(10, 1e7, 1e9), models.SignalBuy, 30},
		{"strong fall", snapshot(-10, 1e7, 1e9), models.SignalSell, 30},
		{"flat", snapshot(2, 1e7, 1e9), models.SignalNeutral, 0},
		{"exactly seven", snapshot(7, 1e7, 1e9), models.SignalNeutral, 0},
		{"thin volume", snapshot(12, 1e5, 1e9), models.SignalNeutral, 0},
		{"volume ratio at floor", snapshot(12, 1e9, 1e12), models.SignalNeutral, 0},
		{"volume ratio above floor", snapshot(12, 2e9, 1e12), models.SignalBuy, 36},
		{"capped", snapshot(50, 1e8, 1e9), models.SignalBuy, 95},
		{"fractional floor", snapshot(-8.9, 1e7, 1e9), models.SignalSell, 26},
		{"zero market cap", snapshot(20, 1e7, 0), models.SignalNeutral, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(tc.snap)
			if got.Type != tc.wantType || got.Confidence != tc.wantConfid {
				t.Fatalf("got %s/%d, want %s/%d", got.Type, got.Confidence, tc.wantType, tc.wantConfid)
			}
		})
	}
}

func TestClassifyCustomThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.PriceChangePct = 1
	c := NewClassifier(th)
	got := c.Classify(snapshot(2, 1e7, 1e9))
	if got.Type != models.SignalBuy || got.Confidence != 6 {
		t.Fatalf("got %s/%d, want BUY/6", got.Type, got.Confidence)
	}
}

func TestVolumeRatio(t *testing.T) {
	if VolumeRatio(10, 0) != 0 || VolumeRatio(10, -1) != 0 {
		t.Fatalf("expected zero ratio for non-positive market cap")
	}
	if VolumeRatio(5, 10) != 0.5 {
		t.Fatalf("unexpected ratio")
	}
}
