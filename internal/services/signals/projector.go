package signals

import (
	"fmt"
	"math"
	"strings"

	"CoinSignals/internal/domain/models"
)

const (
	targetBase = 0.08
	stopBase   = 0.05
)

var bandMultipliers = [3]float64{0.5, 1, 1.5}

// Projector turns a classified snapshot into a full trade plan.
type Projector struct{}

// NewProjector returns a stateless Projector.
func NewProjector() *Projector { return &Projector{} }

// Project builds the complete Signal for a classified snapshot.
func (p *Projector) Project(s models.MarketSnapshot, c models.Classification) models.Signal {
	entry := s.CurrentPrice
	target := TargetPrice(entry, s.PriceChangePct24h, c.Type)
	stop := StopLoss(entry, s.PriceChangePct24h, c.Type)
	support, resistance := SupportResistance(entry, s.PriceChangePct24h)

	return models.Signal{
		ID:                s.ID,
		Pair:              Pair(s.Symbol),
		Name:              s.Name,
		Type:              c.Type,
		Confidence:        c.Confidence,
		EntryPrice:        entry,
		TargetPrice:       target,
		StopLoss:          stop,
		Support:           support,
		Resistance:        resistance,
		PotentialGainPct:  PotentialGainPct(entry, target),
		RiskReward:        RiskReward(entry, target, stop),
		PriceChangePct24h: s.PriceChangePct24h,
	}
}

// TargetPrice moves 8% plus the 24h volatility in the signal's direction.
func TargetPrice(price, changePct float64, t models.SignalType) float64 {
	v := math.Abs(changePct)
	switch t {
	case models.SignalBuy:
		return price * (1 + (targetBase + v/100))
	case models.SignalSell:
		return price * (1 - (targetBase + v/100))
	default:
		return price
	}
}

// StopLoss moves 5% plus half the 24h volatility against the signal's direction.
func StopLoss(price, changePct float64, t models.SignalType) float64 {
	v := math.Abs(changePct)
	switch t {
	case models.SignalBuy:
		return price * (1 - (stopBase + v/200))
	case models.SignalSell:
		return price * (1 + (stopBase + v/200))
	default:
		return price
	}
}

// RiskReward formats reward/risk as "1:x.xx", falling back to "1:1" when there is no risk.
func RiskReward(entry, target, stop float64) string {
	profit := math.Abs(target - entry)
	loss := math.Abs(entry - stop)
	if loss > 0 {
		return fmt.Sprintf("1:%.2f", profit/loss)
	}
	return "1:1"
}

// SupportResistance returns weak/medium/strong levels below and above price.
func SupportResistance(price, changePct float64) (support, resistance [3]float64) {
	f := math.Abs(changePct) / 100
	for i, m := range bandMultipliers {
		support[i] = price * (1 - f*m)
		resistance[i] = price * (1 + f*m)
	}
	return support, resistance
}

// PotentialGainPct is the signed move from entry to target, in percent.
func PotentialGainPct(entry, target float64) float64 {
	if entry == 0 {
		return 0
	}
	return (target - entry) / entry * 100
}

// Pair quotes symbol against USDT, e.g. "btc" -> "BTC/USDT".
func Pair(symbol string) string {
	return strings.ToUpper(symbol) + "/USDT"
}
