package view

import (
	"encoding/json"
	"testing"
	"time"

	"CoinSignals/internal/domain/models"

	"github.com/google/uuid"
)

func TestSignalDTOFormatting(t *testing.T) {
	s := models.Signal{
		ID:                "bitcoin",
		Pair:              "BTC/USDT",
		Name:              "Bitcoin",
		Type:              models.SignalBuy,
		Confidence:        30,
		EntryPrice:        100,
		TargetPrice:       118.000000001,
		StopLoss:          90,
		Support:           [3]float64{95, 90, 85},
		Resistance:        [3]float64{105, 110, 115},
		PotentialGainPct:  18.004,
		RiskReward:        "1:1.80",
		PriceChangePct24h: 10,
	}
	dto := Signal(s)
	if dto.EntryPrice != "100.0000" || dto.TargetPrice != "118.0000" || dto.StopLoss != "90.0000" {
		t.Fatalf("unexpected prices %+v", dto)
	}
	if dto.PotentialGain != "18.00" || dto.PriceChange24h != "10.00" {
		t.Fatalf("unexpected percentages %+v", dto)
	}
	if len(dto.Support) != 3 || dto.Support[2] != "85.0000" || dto.Resistance[0] != "105.0000" {
		t.Fatalf("unexpected levels %+v", dto)
	}
	if dto.SignalType != "BUY" {
		t.Fatalf("unexpected type %s", dto.SignalType)
	}
}

func TestSignalsDTO(t *testing.T) {
	ts := time.Unix(1700000000, 0).UTC()
	dto := Signals(models.SignalBatch{Timestamp: ts, Signals: []models.Signal{{ID: "a"}, {ID: "b"}}})
	if len(dto.Signals) != 2 || !dto.GeneratedAt.Equal(ts) {
		t.Fatalf("unexpected %+v", dto)
	}
}

func TestHistoryDTONeverNull(t *testing.T) {
	b, err := json.Marshal(History(models.FullHistory{ID: "x"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	if m["prices"] == nil {
		t.Fatalf("prices should be an empty array, got %s", b)
	}
}

func TestPriceChart(t *testing.T) {
	cfg := PriceChart("btc", []float64{1, 2, 3})
	if cfg.Type != "line" || len(cfg.Data.Labels) != 3 || cfg.Data.Labels[2] != 2 {
		t.Fatalf("unexpected chart %+v", cfg)
	}
	ds := cfg.Data.Datasets[0]
	if ds.Label != "BTC Price" || ds.BorderColor != "rgb(75, 192, 192)" || ds.Tension != 0.1 {
		t.Fatalf("unexpected dataset %+v", ds)
	}
}

func TestIndicatorChart(t *testing.T) {
	h := models.FullHistory{Prices: []float64{1, 2, 3}, Indicators: models.IndicatorSet{SMA: []float64{2}}}
	cfg := IndicatorChart("BTC/USDT", h)
	if len(cfg.Data.Datasets) != 5 {
		t.Fatalf("expected 5 datasets, got %d", len(cfg.Data.Datasets))
	}
	if !cfg.Data.Datasets[3].Hidden || cfg.Data.Datasets[1].Hidden {
		t.Fatalf("only bollinger bands start hidden")
	}
}

func TestSurfaceRenderChainsHandles(t *testing.T) {
	s := NewSurface()
	first := s.Render(nil, PriceChart("btc", nil))
	if first.Handle.Replaces != nil {
		t.Fatalf("first render replaces nothing")
	}
	second := s.Render(&first.Handle, PriceChart("eth", nil))
	if second.Handle.Replaces == nil || *second.Handle.Replaces != first.Handle.ID {
		t.Fatalf("second render must replace the first")
	}
	if second.Handle.ID == first.Handle.ID {
		t.Fatalf("handles must be unique")
	}
}

func TestParseHandle(t *testing.T) {
	if h, err := ParseHandle(""); h != nil || err != nil {
		t.Fatalf("empty input should yield no handle")
	}
	if _, err := ParseHandle("nope"); err == nil {
		t.Fatalf("expected parse error")
	}
	id := uuid.New()
	h, err := ParseHandle(id.String())
	if err != nil || h.ID != id {
		t.Fatalf("unexpected %v/%v", h, err)
	}
}

func TestFixedRoundsShortestDecimal(t *testing.T) {
	cases := []struct {
		v      float64
		places int32
		want   string
	}{
		{1.005, 2, "1.01"},
		{-1.005, 2, "-1.01"},
		{0.123456, 4, "0.1235"},
		{12, 2, "12.00"},
	}
	for _, tc := range cases {
		if got := fixed(tc.v, tc.places); got != tc.want {
			t.Fatalf("fixed(%v, %d) = %s, want %s", tc.v, tc.places, got, tc.want)
		}
	}
}
