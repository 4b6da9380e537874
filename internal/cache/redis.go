package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/geosite/cms/internal/logger"
)

// RedisCache backs the cache contract with Redis. All keys are namespaced
// with a process-wide prefix so several deployments can share an instance.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache parses url, pings the server and returns a ready cache.
func NewRedisCache(url, prefix string) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client: client,
		prefix: prefix,
	}, nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Get().Warn().Err(err).Str("key", key).Msg("cache get failed, treating as miss")
		}
		return nil, false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		logger.Get().Warn().Err(err).Str("key", key).Msg("cache set failed, skipping population")
	}
}

func (r *RedisCache) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		logger.Get().Warn().Err(err).Str("key", key).Msg("cache delete failed")
	}
}

func (r *RedisCache) InvalidatePattern(ctx context.Context, prefix string) {
	iter := r.client.Scan(ctx, 0, r.prefix+prefix+"*", 0).Iterator()
	var keys []string

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		logger.Get().Warn().Err(err).Str("prefix", prefix).Msg("cache scan failed during invalidation")
		return
	}

	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			logger.Get().Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation failed")
		}
	}
}
