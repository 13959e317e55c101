package repository

import "testing"

func TestNormalizeHistoryDays(t *testing.T) {
	cases := []struct {
		in   int
		def  HistoryDays
		want HistoryDays
	}{
		{0, ChartHistoryDays, ChartHistoryDays},
		{-5, FullHistoryDays, FullHistoryDays},
		{7, ChartHistoryDays, 7},
		{365, ChartHistoryDays, 365},
		{1000, ChartHistoryDays, MaxHistoryDays},
	}
	for _, c := range cases {
		if got := NormalizeHistoryDays(c.in, c.def); got != c.want {
			t.Fatalf("NormalizeHistoryDays(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
