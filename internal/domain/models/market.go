package models

import "time"

// MarketSnapshot is one coin's row from the provider's market listing.
type MarketSnapshot struct {
	ID                string
	Symbol            string
	Name              string
	CurrentPrice      float64
	PriceChangePct24h float64
	Volume24h         float64
	MarketCap         float64
	Rank              int
}

// PricePoint is a single sample of a price history.
type PricePoint struct {
	Time   time.Time
	Price  float64
	Volume float64
}

// TimeSeries is a chronologically ordered price history for one coin.
type TimeSeries struct {
	ID     string
	Points []PricePoint
}

// Prices returns the price column of the series.
func (s TimeSeries) Prices() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Price
	}
	return out
}

// Volumes returns the volume column of the series.
func (s TimeSeries) Volumes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Volume
	}
	return out
}

// TopMarket is a summary row of the market overview.
type TopMarket struct {
	ID                string
	Name              string
	Symbol            string
	CurrentPrice      float64
	MarketCap         float64
	PriceChangePct24h float64
	Rank              int
}
