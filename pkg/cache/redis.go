package cache

import (
	"context"
	stderrors "errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/inscribe/pkg/errors"
)

// DefaultNamespace prefixes every key a shared backend writes, so that
// Clear only touches this tool's entries.
const DefaultNamespace = "inscribe:"

// RedisCache stores entries in Redis with native key expiry.
type RedisCache struct {
	client    redis.UniversalClient
	namespace string
}

// NewRedisCache connects to the server at url (redis://[user:pass@]host:port/db)
// and pings it, retrying transient network failures.
func NewRedisCache(ctx context.Context, url, namespace string) (*RedisCache, error) {
	if url == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "redis cache needs redis_url")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse redis_url")
	}
	client := redis.NewClient(opts)

	err = RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			var netErr net.Error
			if stderrors.As(err, &netErr) {
				return Retryable(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to redis")
	}
	return NewRedisCacheFromClient(client, namespace), nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client redis.UniversalClient, namespace string) *RedisCache {
	return &RedisCache{client: client, namespace: namespace}
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.namespace+key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value; Redis expires it after ttl.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.namespace+key, data, ttl).Err()
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.namespace+key).Err()
}

// Clear deletes every key under the namespace.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	count := 0
	iter := c.client.Scan(ctx, 0, c.namespace+"*", 500).Iterator()
	var batch []string
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := c.client.Del(ctx, batch...).Result()
		count += int(n)
		batch = batch[:0]
		return err
	}
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 500 {
			if err := flush(); err != nil {
				return count, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return count, err
	}
	return count, flush()
}

// Close closes the client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
