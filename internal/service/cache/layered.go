package cache

import (
	"context"
	"time"
)

// Layered reads through a fast local cache before a shared one and
// writes to both. Errors from the shared layer are returned to the caller.
type Layered struct {
	local  BytesCache
	shared BytesCache
}

func NewLayered(local, shared BytesCache) *Layered {
	return &Layered{local: local, shared: shared}
}

func (l *Layered) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	if b, ok, _ := l.local.GetBytes(ctx, key); ok {
		return b, true, nil
	}
	b, ok, err := l.shared.GetBytes(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = l.local.SetBytes(ctx, key, b, localTTL)
	return b, true, nil
}

func (l *Layered) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_ = l.local.SetBytes(ctx, key, value, min(ttl, localTTL))
	return l.shared.SetBytes(ctx, key, value, ttl)
}

// localTTL bounds how stale the in-process layer may get relative to the shared one.
const localTTL = 15 * time.Second
