package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAllowBurstThenRefill(t *testing.T) {
	now := time.Unix(0, 0)
	l := New()
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !l.Allow("k", 3, 1) {
			t.Fatalf("request %d should pass", i)
		}
	}
	if l.Allow("k", 3, 1) {
		t.Fatalf("bucket should be empty")
	}
	if !l.Allow("other", 3, 1) {
		t.Fatalf("keys must not share buckets")
	}

	now = now.Add(time.Second)
	if !l.Allow("k", 3, 1) {
		t.Fatalf("token should be refilled after 1s")
	}
}

func TestWaitHonoursContext(t *testing.T) {
	l := New()
	if !l.Allow("k", 1, 0.001) {
		t.Fatalf("first token should pass")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "k", 1, 0.001); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestWaitReturnsWhenTokenAvailable(t *testing.T) {
	l := New()
	if err := l.Wait(context.Background(), "k", 1, 100); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if err := l.Wait(context.Background(), "k", 1, 100); err != nil {
		t.Fatalf("second wait: %v", err)
	}
}
