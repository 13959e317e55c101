package signals

import (
	"math"
	"testing"

	"CoinSignals/internal/domain/models"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestTargetAndStopBuy(t *testing.T) {
	if got := TargetPrice(100, 10, models.SignalBuy); !near(got, 118) {
		t.Fatalf("target = %f, want 118", got)
	}
	if got := StopLoss(100, 10, models.SignalBuy); !near(got, 90) {
		t.Fatalf("stop = %f, want 90", got)
	}
}

func TestTargetAndStopSell(t *testing.T) {
	if got := TargetPrice(100, -10, models.SignalSell); !near(got, 82) {
		t.Fatalf("target = %f, want 82", got)
	}
	if got := StopLoss(100, -10, models.SignalSell); !near(got, 110) {
		t.Fatalf("stop = %f, want 110", got)
	}
}

func TestNeutralKeepsPrice(t *testing.T) {
	if TargetPrice(42, 3, models.SignalNeutral) != 42 || StopLoss(42, 3, models.SignalNeutral) != 42 {
		t.Fatalf("neutral should return the current price")
	}
}

func TestRiskReward(t *testing.T) {
	if got := RiskReward(100, 118, 90); got != "1:1.80" {
		t.Fatalf("got %q, want 1:1.80", got)
	}
	if got := RiskReward(100, 100, 100); got != "1:1" {
		t.Fatalf("got %q, want 1:1", got)
	}
	if got := RiskReward(100, 130, 100); got != "1:1" {
		t.Fatalf("got %q, want 1:1 when loss is zero", got)
	}
}

func TestSupportResistance(t *testing.T) {
	support, resistance := SupportResistance(200, -10)
	wantS := [3]float64{190, 180, 170}
	wantR := [3]float64{210, 220, 230}
	for i := range wantS {
		if !near(support[i], wantS[i]) || !near(resistance[i], wantR[i]) {
			t.Fatalf("level %d: got %f/%f", i, support[i], resistance[i])
		}
	}
	if !(support[2] < support[1] && support[1] < support[0] && support[0] <= 200) {
		t.Fatalf("support not strictly below price: %v", support)
	}
}

func TestProject(t *testing.T) {
	p := NewProjector()
	snap := snapshot(10, 1e7, 1e9)
	sig := p.Project(snap, models.Classification{Type: models.SignalBuy, Confidence: 30})

	if sig.Pair != "BTC/USDT" || sig.Name != "Bitcoin" || sig.ID != "bitcoin" {
		t.Fatalf("unexpected identity %+v", sig)
	}
	if !near(sig.TargetPrice, 118) || !near(sig.StopLoss, 90) {
		t.Fatalf("unexpected levels %f/%f", sig.TargetPrice, sig.StopLoss)
	}
	if !near(sig.PotentialGainPct, 18) {
		t.Fatalf("gain = %f, want 18", sig.PotentialGainPct)
	}
	if sig.RiskReward != "1:1.80" || sig.Confidence != 30 || sig.PriceChangePct24h != 10 {
		t.Fatalf("unexpected signal %+v", sig)
	}
}

func TestPotentialGainZeroEntry(t *testing.T) {
	if PotentialGainPct(0, 10) != 0 {
		t.Fatalf("expected zero gain for zero entry")
	}
}
