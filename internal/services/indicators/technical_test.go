package indicators

import "testing"

func TestRSINoLosses(t *testing.T) {
	series := make([]float64, 30)
	for i := range series {
		series[i] = float64(100 + i)
	}
	if got := RSI(series, 14); got != 100 {
		t.Fatalf("RSI = %f, want 100", got)
	}
}

func TestRSIUsesFirstPeriodDeltas(t *testing.T) {
	// deltas: +2, -1, +2, -1 then a huge drop outside the window
	series := []float64{10, 12, 11, 13, 12, 1}
	got := RSI(series, 4)
	// avgGain = 4/4, avgLoss = 2/4, rs = 2
	assertClose(t, "rsi", got, 100-100/3.0, 1e-9)
}

func TestRSIBounded(t *testing.T) {
	series := []float64{50, 48, 47, 49, 45, 44, 46, 43, 40, 41, 39, 38, 37, 36, 35, 34}
	got := RSI(series, 14)
	if got < 0 || got > 100 {
		t.Fatalf("RSI out of range: %f", got)
	}
}

func TestRSIShortSeries(t *testing.T) {
	// one delta of -2 divided by the full period
	got := RSI([]float64{10, 8}, 14)
	assertClose(t, "rsi", got, 0, 1e-12)
	if RSI([]float64{10}, 14) != 100 {
		t.Fatalf("expected 100 for a single point")
	}
}

func TestBollingerBands(t *testing.T) {
	series := []float64{1, 2, 3, 4, 5, 6}
	bb := BollingerBands(series, 3, 2)
	if len(bb.Middle) != 4 || len(bb.Upper) != 4 || len(bb.Lower) != 4 {
		t.Fatalf("unexpected lengths %d/%d/%d", len(bb.Middle), len(bb.Upper), len(bb.Lower))
	}
	sd := StandardDeviation(series, 3)
	for i := range bb.Middle {
		assertClose(t, "upper", bb.Upper[i], bb.Middle[i]+2*sd[i], 1e-12)
		assertClose(t, "lower", bb.Lower[i], bb.Middle[i]-2*sd[i], 1e-12)
		if bb.Lower[i] > bb.Middle[i] || bb.Middle[i] > bb.Upper[i] {
			t.Fatalf("bands out of order at %d", i)
		}
	}
}

func TestCalculatorDefaults(t *testing.T) {
	prices := make([]float64, 90)
	for i := range prices {
		prices[i] = 100 + float64(i%10)
	}
	set := NewCalculator(Options{}).Compute(prices)
	if len(set.SMA) != 71 {
		t.Fatalf("sma20 len = %d, want 71", len(set.SMA))
	}
	if len(set.EMA) != 90 {
		t.Fatalf("ema50 len = %d, want 90", len(set.EMA))
	}
	if len(set.Bollinger.Middle) != 71 {
		t.Fatalf("bollinger len = %d, want 71", len(set.Bollinger.Middle))
	}
	if set.RSI < 0 || set.RSI > 100 {
		t.Fatalf("rsi out of range: %f", set.RSI)
	}
}

func TestCalculatorShortSeries(t *testing.T) {
	set := NewCalculator(DefaultOptions()).Compute([]float64{1, 2, 3})
	if len(set.SMA) != 0 || len(set.Bollinger.Upper) != 0 {
		t.Fatalf("expected empty windowed indicators")
	}
	if len(set.EMA) != 3 {
		t.Fatalf("ema len = %d, want 3", len(set.EMA))
	}
}
