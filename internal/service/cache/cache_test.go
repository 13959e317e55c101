package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"CoinSignals/internal/domain/models"
)

type countingProvider struct {
	markets int
	history int
	err     error
}

func (p *countingProvider) ListMarkets(_ context.Context, _ string, _, _ int) ([]models.MarketSnapshot, error) {
	p.markets++
	if p.err != nil {
		return nil, p.err
	}
	return []models.MarketSnapshot{{ID: "bitcoin", Symbol: "btc", CurrentPrice: 100, MarketCap: 1e9}}, nil
}

func (p *countingProvider) PriceHistory(_ context.Context, id string, _ int) (models.TimeSeries, error) {
	p.history++
	if p.err != nil {
		return models.TimeSeries{}, p.err
	}
	return models.TimeSeries{ID: id, Points: []models.PricePoint{{Time: time.Unix(1, 0).UTC(), Price: 1, Volume: 2}}}, nil
}

type failingCache struct{}

func (failingCache) GetBytes(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("down")
}

func (failingCache) SetBytes(context.Context, string, []byte, time.Duration) error {
	return errors.New("down")
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache()
	c.Set("a", 1, time.Millisecond)
	c.Set("b", 2, 0)
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected a to expire")
	}
	if v, ok := c.Get("b"); !ok || v.(int) != 2 {
		t.Fatalf("expected b to persist")
	}
}

func TestTTLCacheSweep(t *testing.T) {
	now := time.Unix(1700000000, 0)
	c := NewTTLCache()
	c.now = func() time.Time { return now }
	c.Set("old", 1, time.Second)
	c.Set("keep", 2, time.Hour)
	c.Set("forever", 3, 0)

	now = now.Add(time.Minute)
	if n := c.Sweep(); n != 1 {
		t.Fatalf("expected 1 expired entry, got %d", n)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries left, got %d", c.Len())
	}
}

func TestTTLCacheBytes(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache()
	c.Set("not-bytes", 5, 0)
	if _, ok, _ := c.GetBytes(ctx, "not-bytes"); ok {
		t.Fatalf("non-byte value must not be returned")
	}
	_ = c.SetBytes(ctx, "k", []byte("v"), time.Minute)
	if b, ok, _ := c.GetBytes(ctx, "k"); !ok || string(b) != "v" {
		t.Fatalf("unexpected %q/%v", b, ok)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
}

func TestLayeredFillsLocal(t *testing.T) {
	ctx := context.Background()
	local, shared := NewTTLCache(), NewTTLCache()
	_ = shared.SetBytes(ctx, "k", []byte("v"), time.Minute)

	l := NewLayered(local, shared)
	if b, ok, err := l.GetBytes(ctx, "k"); err != nil || !ok || string(b) != "v" {
		t.Fatalf("unexpected %q/%v/%v", b, ok, err)
	}
	if _, ok, _ := local.GetBytes(ctx, "k"); !ok {
		t.Fatalf("local layer not filled")
	}
}

func TestMarketProviderCachesResponses(t *testing.T) {
	ctx := context.Background()
	next := &countingProvider{}
	p := NewMarketProvider(next, NewTTLCache(), time.Minute, time.Minute, nil)

	for i := 0; i < 3; i++ {
		got, err := p.ListMarkets(ctx, "usd", 250, 1)
		if err != nil || len(got) != 1 || got[0].ID != "bitcoin" {
			t.Fatalf("unexpected %v/%v", got, err)
		}
	}
	if next.markets != 1 {
		t.Fatalf("provider called %d times, want 1", next.markets)
	}

	for i := 0; i < 2; i++ {
		ts, err := p.PriceHistory(ctx, "bitcoin", 30)
		if err != nil || len(ts.Points) != 1 || ts.Points[0].Volume != 2 {
			t.Fatalf("unexpected %+v/%v", ts, err)
		}
	}
	if _, err := p.PriceHistory(ctx, "bitcoin", 90); err != nil {
		t.Fatalf("history: %v", err)
	}
	if next.history != 2 {
		t.Fatalf("history called %d times, want 2", next.history)
	}
}

func TestMarketProviderDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	next := &countingProvider{err: models.ErrProviderUnavailable}
	p := NewMarketProvider(next, NewTTLCache(), time.Minute, time.Minute, nil)
	for i := 0; i < 2; i++ {
		if _, err := p.ListMarkets(ctx, "usd", 250, 1); !errors.Is(err, models.ErrProviderUnavailable) {
			t.Fatalf("expected provider error, got %v", err)
		}
	}
	if next.markets != 2 {
		t.Fatalf("errors must not be cached")
	}
}

func TestMarketProviderSurvivesBrokenCache(t *testing.T) {
	next := &countingProvider{}
	p := NewMarketProvider(next, failingCache{}, time.Minute, time.Minute, nil)
	if _, err := p.ListMarkets(context.Background(), "usd", 250, 1); err != nil {
		t.Fatalf("cache failure leaked: %v", err)
	}
}

func TestGetJSONTreatsGarbageAsMiss(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache()
	_ = c.SetBytes(ctx, "k", []byte("not json"), time.Minute)
	if _, ok, err := GetJSON[[]int](ctx, c, "k"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := SetJSON(ctx, c, "k", []int{1, 2}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	got, ok, err := GetJSON[[]int](ctx, c, "k")
	if err != nil || !ok || len(got) != 2 {
		t.Fatalf("unexpected %v %v %v", got, ok, err)
	}
}

func TestOpenRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := OpenRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1", Timeout: 100 * time.Millisecond}); err == nil {
		t.Fatalf("expected ping failure")
	}
}
