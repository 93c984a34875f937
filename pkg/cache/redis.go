package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by Redis, for deployments where several
// generation processes want to share one persistent tier. Entries are stored
// JSON-encoded under a key prefix. A server-side TTL is set as a backstop;
// the coordinator still applies its own expiration policy on read, so both
// stores behave identically from the cache's point of view.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store. The prefix namespaces this
// cache's keys inside the Redis keyspace; ttl bounds server-side retention
// and should match the cache TTL.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if prefix == "" {
		prefix = "contentcache"
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *RedisStore) redisKey(key string) string {
	return r.prefix + ":" + key
}

func (r *RedisStore) cacheKey(redisKey string) string {
	return redisKey[len(r.prefix)+1:]
}

// Lookup returns the entry for key. A value that fails to decode is deleted
// and reported as ErrNotFound, matching DiskStore's self-healing behavior.
func (r *RedisStore) Lookup(ctx context.Context, key string) (*Entry, error) {
	data, err := r.client.Get(ctx, r.redisKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	entry, err := decodeEntry(data)
	if err != nil {
		_ = r.client.Del(ctx, r.redisKey(key)).Err()
		return nil, ErrNotFound
	}
	return entry, nil
}

// Write stores entry for key with the configured server-side TTL.
func (r *RedisStore) Write(ctx context.Context, key string, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := r.client.Set(ctx, r.redisKey(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Remove deletes the record for key.
func (r *RedisStore) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Scan enumerates every record under the key prefix. Values that vanish
// between SCAN and GET (server-side expiry) are skipped; undecodable values
// are reported as corrupt items.
func (r *RedisStore) Scan(ctx context.Context) ([]ScanItem, error) {
	var items []ScanItem
	iter := r.client.Scan(ctx, 0, r.redisKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		redisKey := iter.Val()
		key := r.cacheKey(redisKey)

		data, err := r.client.Get(ctx, redisKey).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			items = append(items, ScanItem{Key: key, Corrupt: true})
			continue
		}
		entry, err := decodeEntry(data)
		if err != nil {
			items = append(items, ScanItem{Key: key, Corrupt: true})
			continue
		}
		items = append(items, ScanItem{Key: key, Entry: entry})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return items, nil
}

// Count returns the number of records under the key prefix.
func (r *RedisStore) Count(ctx context.Context) (int, error) {
	n := 0
	iter := r.client.Scan(ctx, 0, r.redisKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis scan: %w", err)
	}
	return n, nil
}

// Clear deletes every record under the key prefix.
func (r *RedisStore) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.redisKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
