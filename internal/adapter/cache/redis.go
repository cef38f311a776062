package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyNamespace = "storefront"

// Redis implements Cache on a redis instance. Keys are namespaced as
// storefront:<bucket>:<key> so a bucket can be evicted with one scan.
type Redis struct {
	client *redis.Client
}

// NewRedis connects a redis-backed cache.
func NewRedis(addr string) *Redis {
	return &Redis{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *Redis) key(bucket, key string) string {
	return fmt.Sprintf("%s:%s:%s", keyNamespace, bucket, key)
}

func (r *Redis) Get(ctx context.Context, bucket, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.key(bucket, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, bucket, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, r.key(bucket, key), value, ttl).Err()
}

func (r *Redis) Evict(ctx context.Context, bucket, key string) error {
	return r.client.Del(ctx, r.key(bucket, key)).Err()
}

func (r *Redis) EvictBucket(ctx context.Context, bucket string) error {
	iter := r.client.Scan(ctx, 0, fmt.Sprintf("%s:%s:*", keyNamespace, bucket), 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close releases the redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
