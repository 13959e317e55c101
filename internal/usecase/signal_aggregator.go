package usecase

import (
	"cmp"
	"math"
	"slices"

	"CoinSignals/internal/domain/models"
	domsvc "CoinSignals/internal/domain/service"
)

// AggregatorConfig holds the ranking limits.
type AggregatorConfig struct {
	MinMarketCap  float64 // strictly greater than
	MinAbsGainPct float64 // strictly greater than
	TopN          int
}

func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{MinMarketCap: 5_000_000, MinAbsGainPct: 3, TopN: 20}
}

// SignalAggregator turns market snapshots into a ranked list of signals.
// It is pure: same input, same output.
type SignalAggregator struct {
	classifier domsvc.Classifier
	projector  domsvc.Projector
	cfg        AggregatorConfig
}

func NewSignalAggregator(classifier domsvc.Classifier, projector domsvc.Projector, cfg AggregatorConfig) *SignalAggregator {
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultAggregatorConfig().TopN
	}
	return &SignalAggregator{classifier: classifier, projector: projector, cfg: cfg}
}

// Aggregate filters by market cap, classifies and projects each snapshot, drops
// NEUTRAL and small moves, then keeps the TopN by |potential gain|. Ties keep
// input order.
func (a *SignalAggregator) Aggregate(snaps []models.MarketSnapshot) []models.Signal {
	out := make([]models.Signal, 0, len(snaps))
	for _, s := range snaps {
		if s.MarketCap <= a.cfg.MinMarketCap {
			continue
		}
		sig := a.projector.Project(s, a.classifier.Classify(s))
		if sig.Type == models.SignalNeutral || math.Abs(sig.PotentialGainPct) <= a.cfg.MinAbsGainPct {
			continue
		}
		out = append(out, sig)
	}

	slices.SortStableFunc(out, func(x, y models.Signal) int {
		return cmp.Compare(math.Abs(y.PotentialGainPct), math.Abs(x.PotentialGainPct))
	})

	if len(out) > a.cfg.TopN {
		out = out[:a.cfg.TopN]
	}
	return out
}
