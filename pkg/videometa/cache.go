package videometa

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/improv-tovarisch/backend/pkg/logger"
)

// Cache is the injectable read-through store for fetched metadata. It
// exists so page views do not hammer third-party endpoints and so tests
// can substitute a fake and assert no network calls happen on repeats.
type Cache interface {
	Get(ctx context.Context, key string) (Metadata, bool)
	Set(ctx context.Context, key string, md Metadata)
}

type memoryEntry struct {
	md        Metadata
	expiresAt time.Time
}

// MemoryCache is a TTL map, the default when no redis is configured.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (Metadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return Metadata{}, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return Metadata{}, false
	}
	return entry.md, true
}

func (c *MemoryCache) Set(_ context.Context, key string, md Metadata) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{md: md, expiresAt: c.now().Add(c.ttl)}
}

// RedisCache shares fetched metadata across instances.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (Metadata, bool) {
	raw, err := c.client.Get(ctx, makeKey(key)).Result()
	if err == redis.Nil {
		return Metadata{}, false
	}
	if err != nil {
		logger.Log.Debug().Err(err).Str("key", key).Msg("metadata cache get error")
		return Metadata{}, false
	}

	var md Metadata
	if err := json.Unmarshal([]byte(raw), &md); err != nil {
		return Metadata{}, false
	}
	return md, true
}

func (c *RedisCache) Set(ctx context.Context, key string, md Metadata) {
	raw, err := json.Marshal(md)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, makeKey(key), raw, c.ttl).Err(); err != nil {
		logger.Log.Debug().Err(err).Str("key", key).Msg("metadata cache set error")
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func makeKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return "videometa:" + hex.EncodeToString(hash[:])
}
