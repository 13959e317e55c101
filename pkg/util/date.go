package util

import (
	"math"
	"time"
)

// FromUnixMillis converts a (possibly fractional) millisecond epoch into UTC time.
func FromUnixMillis(ms float64) time.Time {
	if ms <= 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}
	}
	return time.UnixMilli(int64(ms)).UTC()
}

// DurationOrDefault returns d, or def when d is not positive.
func DurationOrDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
