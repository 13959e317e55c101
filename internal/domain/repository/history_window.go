package repository

// HistoryDays is the look-back window, in days, of a price history request.
type HistoryDays int

const (
	MinHistoryDays HistoryDays = 1
	MaxHistoryDays HistoryDays = 365

	ChartHistoryDays HistoryDays = 30
	FullHistoryDays  HistoryDays = 90
)

// IsValidHistoryDays returns true if d is inside the supported window.
func IsValidHistoryDays(d HistoryDays) bool {
	return d >= MinHistoryDays && d <= MaxHistoryDays
}

// NormalizeHistoryDays converts a raw day count to a valid window (or def).
func NormalizeHistoryDays(days int, def HistoryDays) HistoryDays {
	d := HistoryDays(days)
	if IsValidHistoryDays(d) {
		return d
	}
	if days > int(MaxHistoryDays) {
		return MaxHistoryDays
	}
	return def
}
