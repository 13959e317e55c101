package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// BytesCache stores raw values with a TTL. A miss is (nil, false, nil).
type BytesCache interface {
	GetBytes(ctx context.Context, key string) (b []byte, ok bool, err error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// GetJSON reads key into a T. An entry that no longer decodes counts as a miss.
func GetJSON[T any](ctx context.Context, c BytesCache, key string) (T, bool, error) {
	var v T
	b, ok, err := c.GetBytes(ctx, key)
	if err != nil || !ok {
		return v, false, err
	}
	if json.Unmarshal(b, &v) != nil {
		return v, false, nil
	}
	return v, true, nil
}

func SetJSON[T any](ctx context.Context, c BytesCache, key string, v T, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.SetBytes(ctx, key, b, ttl)
}
