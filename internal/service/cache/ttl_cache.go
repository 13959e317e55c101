package cache

import (
	"context"
	"sync"
	"time"
)

// sweepEvery is how many writes pass between expired-entry sweeps.
const sweepEvery = 256

type entry struct {
	v   any
	exp time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.exp.IsZero() && now.After(e.exp)
}

// TTLCache is an in-process cache. Expired entries are dropped on read and by a
// periodic sweep during writes.
type TTLCache struct {
	mu     sync.RWMutex
	m      map[string]entry
	now    func() time.Time
	writes int
}

func NewTTLCache() *TTLCache {
	return &TTLCache{m: make(map[string]entry), now: time.Now}
}

func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.expired(c.now()) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.v, true
}

// Set stores v; ttl <= 0 keeps it until overwritten.
func (c *TTLCache) Set(key string, v any, ttl time.Duration) {
	now := c.now()
	var exp time.Time
	if ttl > 0 {
		exp = now.Add(ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = entry{v: v, exp: exp}
	c.writes++
	if c.writes%sweepEvery == 0 {
		c.sweepLocked(now)
	}
}

// Sweep removes expired entries and returns how many were dropped.
func (c *TTLCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked(c.now())
}

func (c *TTLCache) sweepLocked(now time.Time) int {
	n := 0
	for k, e := range c.m {
		if e.expired(now) {
			delete(c.m, k)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, expired ones included.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

func (c *TTLCache) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	return b, ok, nil
}

func (c *TTLCache) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.Set(key, value, ttl)
	return nil
}
