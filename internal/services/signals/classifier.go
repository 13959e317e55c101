package signals

import (
	"math"

	"CoinSignals/internal/domain/models"
)

// Thresholds tunes the classifier. The zero value is not useful; start from DefaultThresholds.
type Thresholds struct {
	PriceChangePct   float64 // |24h change| that must be exceeded
	MinVolumeRatio   float64 // volume / market cap that must be exceeded
	ConfidenceFactor float64
	MaxConfidence    float64
}

// DefaultThresholds is a 7% move on volume above 0.1% of market cap, confidence 3x the move capped at 95.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PriceChangePct:   7,
		MinVolumeRatio:   0.001,
		ConfidenceFactor: 3,
		MaxConfidence:    95,
	}
}

// Classifier labels market snapshots BUY, SELL or NEUTRAL.
type Classifier struct {
	th Thresholds
}

// NewClassifier returns a classifier using th.
func NewClassifier(th Thresholds) *Classifier {
	return &Classifier{th: th}
}

// Classify labels a snapshot BUY on a strong rise with volume, SELL on a strong
// fall with volume, and NEUTRAL otherwise.
func (c *Classifier) Classify(s models.MarketSnapshot) models.Classification {
	ratio := VolumeRatio(s.Volume24h, s.MarketCap)
	volatility := math.Abs(s.PriceChangePct24h)

	switch {
	case s.PriceChangePct24h > c.th.PriceChangePct && ratio > c.th.MinVolumeRatio:
		return models.Classification{Type: models.SignalBuy, Confidence: c.confidence(volatility)}
	case s.PriceChangePct24h < -c.th.PriceChangePct && ratio > c.th.MinVolumeRatio:
		return models.Classification{Type: models.SignalSell, Confidence: c.confidence(volatility)}
	default:
		return models.Classification{Type: models.SignalNeutral}
	}
}

func (c *Classifier) confidence(volatility float64) int {
	v := math.Min(volatility*c.th.ConfidenceFactor, c.th.MaxConfidence)
	if v < 0 {
		v = 0
	}
	return int(math.Floor(v))
}

// VolumeRatio is volume / market cap, or 0 when the market cap is not positive.
func VolumeRatio(volume, marketCap float64) float64 {
	if marketCap <= 0 {
		return 0
	}
	return volume / marketCap
}
