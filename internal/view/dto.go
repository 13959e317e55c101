package view

import (
	"strings"
	"time"

	"CoinSignals/internal/domain/models"

	"github.com/shopspring/decimal"
)

const (
	pricePlaces = 4
	pctPlaces   = 2
)

// SignalDTO is the wire shape of a Signal. Prices carry 4 decimals, percentages 2.
type SignalDTO struct {
	ID             string   `json:"id"`
	Pair           string   `json:"pair"`
	Name           string   `json:"name"`
	SignalType     string   `json:"signalType"`
	EntryPrice     string   `json:"entryPrice"`
	TargetPrice    string   `json:"targetPrice"`
	StopLoss       string   `json:"stopLoss"`
	Support        []string `json:"support"`
	Resistance     []string `json:"resistance"`
	PotentialGain  string   `json:"potentialGain"`
	RiskReward     string   `json:"riskReward"`
	Confidence     int      `json:"confidence"`
	PriceChange24h string   `json:"priceChange24h"`
}

// SignalsDTO wraps one aggregation run.
type SignalsDTO struct {
	GeneratedAt time.Time         `json:"generatedAt"`
	Signals     []SignalDTO       `json:"signals"`
	Degraded    bool              `json:"degraded,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
}

// MarketDTO is one row of the market overview.
type MarketDTO struct {
	ID                       string  `json:"id"`
	Name                     string  `json:"name"`
	Symbol                   string  `json:"symbol"`
	CurrentPrice             float64 `json:"currentPrice"`
	MarketCap                float64 `json:"marketCap"`
	PriceChangePercentage24h float64 `json:"priceChangePercentage24h"`
	Rank                     int     `json:"rank"`
}

// BollingerDTO mirrors models.BollingerBands.
type BollingerDTO struct {
	Middle []float64 `json:"middle"`
	Upper  []float64 `json:"upper"`
	Lower  []float64 `json:"lower"`
}

// IndicatorsDTO mirrors models.IndicatorSet with the dashboard's key names.
type IndicatorsDTO struct {
	SMA20     []float64    `json:"sma20"`
	EMA50     []float64    `json:"ema50"`
	RSI       float64      `json:"rsi"`
	Bollinger BollingerDTO `json:"bollinger"`
}

// HistoryDTO is a full history with indicators. A failed fetch yields empty
// series with Degraded set.
type HistoryDTO struct {
	ID         string            `json:"id"`
	Prices     []float64         `json:"prices"`
	Volumes    []float64         `json:"volumes"`
	Indicators IndicatorsDTO     `json:"indicators"`
	Degraded   bool              `json:"degraded,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// DashboardEntryDTO pairs one signal with its history and chart.
type DashboardEntryDTO struct {
	Signal  SignalDTO   `json:"signal"`
	History HistoryDTO  `json:"history"`
	Chart   ChartConfig `json:"chart"`
}

type DashboardDTO struct {
	GeneratedAt time.Time           `json:"generatedAt"`
	Entries     []DashboardEntryDTO `json:"entries"`
	Degraded    bool                `json:"degraded,omitempty"`
	Errors      map[string]string   `json:"errors,omitempty"`
}

func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

func fixedAll(vs []float64, places int32) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = fixed(v, places)
	}
	return out
}

func Signal(s models.Signal) SignalDTO {
	return SignalDTO{
		ID:             s.ID,
		Pair:           s.Pair,
		Name:           s.Name,
		SignalType:     string(s.Type),
		EntryPrice:     fixed(s.EntryPrice, pricePlaces),
		TargetPrice:    fixed(s.TargetPrice, pricePlaces),
		StopLoss:       fixed(s.StopLoss, pricePlaces),
		Support:        fixedAll(s.Support[:], pricePlaces),
		Resistance:     fixedAll(s.Resistance[:], pricePlaces),
		PotentialGain:  fixed(s.PotentialGainPct, pctPlaces),
		RiskReward:     s.RiskReward,
		Confidence:     s.Confidence,
		PriceChange24h: fixed(s.PriceChangePct24h, pctPlaces),
	}
}

func Signals(b models.SignalBatch) SignalsDTO {
	out := SignalsDTO{
		GeneratedAt: b.Timestamp,
		Signals:     make([]SignalDTO, len(b.Signals)),
		Degraded:    b.Degraded,
		Errors:      b.Errors,
	}
	for i, s := range b.Signals {
		out.Signals[i] = Signal(s)
	}
	return out
}

func Markets(ms []models.TopMarket) []MarketDTO {
	out := make([]MarketDTO, len(ms))
	for i, m := range ms {
		out[i] = MarketDTO{
			ID:                       m.ID,
			Name:                     m.Name,
			Symbol:                   strings.ToUpper(m.Symbol),
			CurrentPrice:             m.CurrentPrice,
			MarketCap:                m.MarketCap,
			PriceChangePercentage24h: m.PriceChangePct24h,
			Rank:                     m.Rank,
		}
	}
	return out
}

func History(h models.FullHistory) HistoryDTO {
	return HistoryDTO{
		ID:      h.ID,
		Prices:  nonNil(h.Prices),
		Volumes: nonNil(h.Volumes),
		Indicators: IndicatorsDTO{
			SMA20: nonNil(h.Indicators.SMA),
			EMA50: nonNil(h.Indicators.EMA),
			RSI:   h.Indicators.RSI,
			Bollinger: BollingerDTO{
				Middle: nonNil(h.Indicators.Bollinger.Middle),
				Upper:  nonNil(h.Indicators.Bollinger.Upper),
				Lower:  nonNil(h.Indicators.Bollinger.Lower),
			},
		},
	}
}

func Dashboard(d models.Dashboard) DashboardDTO {
	out := DashboardDTO{
		GeneratedAt: d.Signals.Timestamp,
		Entries:     make([]DashboardEntryDTO, len(d.Entries)),
		Degraded:    d.Degraded,
		Errors:      d.Errors,
	}
	for i, e := range d.Entries {
		out.Entries[i] = DashboardEntryDTO{
			Signal:  Signal(e.Signal),
			History: History(e.History),
			Chart:   IndicatorChart(e.Signal.Pair, e.History),
		}
	}
	return out
}

// nonNil keeps empty series as [] rather than null on the wire.
func nonNil(xs []float64) []float64 {
	if xs == nil {
		return []float64{}
	}
	return xs
}
