package util

import (
	"testing"
	"time"
)

func TestFromUnixMillis(t *testing.T) {
	want := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := FromUnixMillis(float64(want.UnixMilli()))
	if !got.Equal(want) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestFromUnixMillisInvalid(t *testing.T) {
	if !FromUnixMillis(0).IsZero() || !FromUnixMillis(-1).IsZero() {
		t.Fatalf("expected zero time")
	}
}

func TestDurationOrDefault(t *testing.T) {
	if DurationOrDefault(0, time.Second) != time.Second {
		t.Fatalf("expected default")
	}
	if DurationOrDefault(time.Minute, time.Second) != time.Minute {
		t.Fatalf("expected value")
	}
}

func TestParseIntDefault(t *testing.T) {
	if ParseIntDefault("", 7) != 7 || ParseIntDefault("x", 7) != 7 {
		t.Fatalf("expected default")
	}
	if ParseIntDefault(" 42 ", 7) != 42 {
		t.Fatalf("expected 42")
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := SplitAndTrim(" a:9092, ,b:9092 ", ",")
	if len(got) != 2 || got[0] != "a:9092" || got[1] != "b:9092" {
		t.Fatalf("unexpected split %v", got)
	}
}
