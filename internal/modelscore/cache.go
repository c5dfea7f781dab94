package modelscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/essaylens/internal/scoring"
)

// ErrCacheMiss is returned by Cache.Get when no entry exists.
var ErrCacheMiss = errors.New("modelscore: cache miss")

// Cache stores model scores by key.
type Cache interface {
	Get(ctx context.Context, key string) (scoring.Aspects, error)
	Set(ctx context.Context, key string, a scoring.Aspects) error
}

// RedisCache keeps scores as JSON strings under a key prefix.
type RedisCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisCache wraps client. A zero ttl stores entries without expiry.
func NewRedisCache(client redis.Cmdable, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (scoring.Aspects, error) {
	var a scoring.Aspects
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return a, ErrCacheMiss
	}
	if err != nil {
		return a, fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return a, fmt.Errorf("decode cached scores: %w", err)
	}
	return a, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, a scoring.Aspects) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// MemoryCache is a bounded in-process Cache. When full, expired entries are
// dropped first, then an arbitrary one.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	max     int
	now     func() time.Time
}

type memoryEntry struct {
	scores  scoring.Aspects
	expires time.Time
}

// NewMemoryCache holds at most maxEntries scores for ttl each. A zero ttl
// never expires entries.
func NewMemoryCache(maxEntries int, ttl time.Duration) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	return &MemoryCache{entries: make(map[string]memoryEntry), ttl: ttl, max: maxEntries, now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) (scoring.Aspects, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return scoring.Aspects{}, ErrCacheMiss
	}
	if c.expired(e) {
		delete(c.entries, key)
		return scoring.Aspects{}, ErrCacheMiss
	}
	return e.scores, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, a scoring.Aspects) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.max {
		c.evict()
	}
	e := memoryEntry{scores: a}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}
	c.entries[key] = e
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) expired(e memoryEntry) bool {
	return !e.expires.IsZero() && !c.now().Before(e.expires)
}

func (c *MemoryCache) evict() {
	for k, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.max {
		return
	}
	for k := range c.entries {
		delete(c.entries, k)
		return
	}
}
