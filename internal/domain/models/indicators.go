package models

// BollingerBands holds the three band series, aligned with the SMA.
type BollingerBands struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
}

// IndicatorSet bundles the indicators computed over one price series.
type IndicatorSet struct {
	SMA       []float64 // sma20
	EMA       []float64 // ema50
	RSI       float64
	Bollinger BollingerBands
}

// FullHistory is a price history together with its indicators.
type FullHistory struct {
	ID         string
	Prices     []float64
	Volumes    []float64
	Indicators IndicatorSet
}

// DashboardEntry pairs a signal with its full history.
type DashboardEntry struct {
	Signal  Signal
	History FullHistory
}

// Dashboard is the aggregated data behind the signals dashboard.
type Dashboard struct {
	Signals  SignalBatch
	Entries  []DashboardEntry
	Degraded bool
	Errors   map[string]string
}
