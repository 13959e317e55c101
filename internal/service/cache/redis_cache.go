package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is the shared BytesCache tier. Every key is namespaced by Prefix.
type RedisCache struct {
	cli    *redis.Client
	prefix string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	Timeout  time.Duration // dial, read and write; 500ms when zero
}

// OpenRedisCache connects and pings the server, closing the client if the ping fails.
func OpenRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	cli := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return &RedisCache{cli: cli, prefix: cfg.Prefix}, nil
}

func (r *RedisCache) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.cli.Get(ctx, r.prefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return b, true, nil
}

func (r *RedisCache) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.cli.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Close() error {
	return r.cli.Close()
}
