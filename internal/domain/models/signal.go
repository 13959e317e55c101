package models

import "time"

type SignalType string

const (
	SignalBuy     SignalType = "BUY"
	SignalSell    SignalType = "SELL"
	SignalNeutral SignalType = "NEUTRAL"
)

// Classification is the classifier verdict for a snapshot.
type Classification struct {
	Type       SignalType
	Confidence int // 0..95
}

// Signal is the full trading suggestion derived from one MarketSnapshot.
// Values are never mutated after creation.
type Signal struct {
	ID                string
	Pair              string // e.g. "BTC/USDT"
	Name              string
	Type              SignalType
	Confidence        int
	EntryPrice        float64
	TargetPrice       float64
	StopLoss          float64
	Support           [3]float64 // weak, medium, strong
	Resistance        [3]float64 // weak, medium, strong
	PotentialGainPct  float64
	RiskReward        string // "1:x"
	PriceChangePct24h float64
}

// SignalBatch is the result of one aggregation run.
// Note: no transport (json/http) concerns here.
type SignalBatch struct {
	Timestamp time.Time
	Signals   []Signal
	Degraded  bool
	Errors    map[string]string
}
