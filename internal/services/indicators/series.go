package indicators

import (
	"iter"
	"math"
)

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Variance returns the population variance of xs.
func Variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := Mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return sum / float64(len(xs))
}

// MovingAverageSeq yields the mean of every trailing window of length period,
// starting at index period-1. Nothing is yielded when period is out of range.
func MovingAverageSeq(series []float64, period int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if period <= 0 || period > len(series) {
			return
		}
		for i := period - 1; i < len(series); i++ {
			if !yield(Mean(series[i-period+1 : i+1])) {
				return
			}
		}
	}
}

// MovingAverage computes the simple moving average.
// It returns a slice of length len(series)-period+1, or an empty slice if period > len(series).
func MovingAverage(series []float64, period int) []float64 {
	out := make([]float64, 0, windowCount(len(series), period))
	for v := range MovingAverageSeq(series, period) {
		out = append(out, v)
	}
	return out
}

// ExponentialAverage seeds with series[0] and applies alpha = 2/(period+1).
// The result has the same length as the input.
func ExponentialAverage(series []float64, period int) []float64 {
	if len(series) == 0 {
		return []float64{}
	}
	alpha := 2.0 / float64(period+1)
	out := make([]float64, len(series))
	out[0] = series[0]
	for i := 1; i < len(series); i++ {
		out[i] = (series[i]-out[i-1])*alpha + out[i-1]
	}
	return out
}

// StandardDeviation computes the population standard deviation of every
// trailing window, aligned index-for-index with MovingAverage.
func StandardDeviation(series []float64, period int) []float64 {
	n := windowCount(len(series), period)
	out := make([]float64, 0, n)
	if n == 0 {
		return out
	}
	for i := period - 1; i < len(series); i++ {
		out = append(out, math.Sqrt(Variance(series[i-period+1:i+1])))
	}
	return out
}

func windowCount(n, period int) int {
	if period <= 0 || period > n {
		return 0
	}
	return n - period + 1
}
