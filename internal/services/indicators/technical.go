package indicators

import "CoinSignals/internal/domain/models"

const (
	DefaultRSIPeriod       = 14
	DefaultBollingerPeriod = 20
	DefaultBollingerK      = 2.0
	DefaultSMAPeriod       = 20
	DefaultEMAPeriod       = 50
)

// RSI computes the relative strength index from the first period deltas only.
// Gains and losses are summed over the available first period deltas and
// divided by period. Returns 100 when there are no losses.
func RSI(series []float64, period int) float64 {
	if period <= 0 {
		period = DefaultRSIPeriod
	}
	var gainSum, lossSum float64
	for i := 1; i < len(series) && i <= period; i++ {
		d := series[i] - series[i-1]
		if d > 0 {
			gainSum += d
		} else {
			lossSum -= d
		}
	}
	avgGain := gainSum / float64(period)
	avgLoss := lossSum / float64(period)
	if avgLoss == 0 {
		return 100
	}
	return 100 - 100/(1+avgGain/avgLoss)
}

// BollingerBands returns middle = SMA(period) and upper/lower = middle ± k·stddev.
func BollingerBands(series []float64, period int, k float64) models.BollingerBands {
	middle := MovingAverage(series, period)
	sd := StandardDeviation(series, period)
	upper := make([]float64, len(middle))
	lower := make([]float64, len(middle))
	for i, m := range middle {
		upper[i] = m + sd[i]*k
		lower[i] = m - sd[i]*k
	}
	return models.BollingerBands{Middle: middle, Upper: upper, Lower: lower}
}

// Options selects the periods used by Calculator.
type Options struct {
	SMAPeriod       int
	EMAPeriod       int
	RSIPeriod       int
	BollingerPeriod int
	BollingerK      float64
}

// DefaultOptions returns sma20/ema50/rsi14/bollinger(20,2).
func DefaultOptions() Options {
	return Options{
		SMAPeriod:       DefaultSMAPeriod,
		EMAPeriod:       DefaultEMAPeriod,
		RSIPeriod:       DefaultRSIPeriod,
		BollingerPeriod: DefaultBollingerPeriod,
		BollingerK:      DefaultBollingerK,
	}
}

// Calculator builds IndicatorSets with fixed options.
type Calculator struct {
	opts Options
}

// NewCalculator returns a Calculator using the given periods.
func NewCalculator(opts Options) *Calculator {
	def := DefaultOptions()
	if opts.SMAPeriod <= 0 {
		opts.SMAPeriod = def.SMAPeriod
	}
	if opts.EMAPeriod <= 0 {
		opts.EMAPeriod = def.EMAPeriod
	}
	if opts.RSIPeriod <= 0 {
		opts.RSIPeriod = def.RSIPeriod
	}
	if opts.BollingerPeriod <= 0 {
		opts.BollingerPeriod = def.BollingerPeriod
	}
	if opts.BollingerK <= 0 {
		opts.BollingerK = def.BollingerK
	}
	return &Calculator{opts: opts}
}

// Compute returns the indicator bundle for prices. An empty series yields
// empty slices and an RSI of 100.
func (c *Calculator) Compute(prices []float64) models.IndicatorSet {
	return models.IndicatorSet{
		SMA:       MovingAverage(prices, c.opts.SMAPeriod),
		EMA:       ExponentialAverage(prices, c.opts.EMAPeriod),
		RSI:       RSI(prices, c.opts.RSIPeriod),
		Bollinger: BollingerBands(prices, c.opts.BollingerPeriod, c.opts.BollingerK),
	}
}
