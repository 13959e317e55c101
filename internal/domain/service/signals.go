package service

import "CoinSignals/internal/domain/models"

// Classifier turns a snapshot into a BUY/SELL/NEUTRAL verdict.
type Classifier interface {
	Classify(s models.MarketSnapshot) models.Classification
}

// Projector derives price levels for a classified snapshot.
type Projector interface {
	Project(s models.MarketSnapshot, c models.Classification) models.Signal
}

// IndicatorCalculator computes the indicator bundle for a price series.
type IndicatorCalculator interface {
	Compute(prices []float64) models.IndicatorSet
}
