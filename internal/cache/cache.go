// Package cache provides an optional Redis-backed read-through cache for
// proxy resolution. Entries expire on a short TTL; a stale page is
// acceptable for the proxy, a stale miss is not, so only hits are cached.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"seopages-backend-go/internal/models"
)

const resolveKeyPrefix = "seo:resolve:"

// Entry is one cached resolution: the active project and published page
// for a (projectKey, path) pair.
type Entry struct {
	Project models.Project `json:"project"`
	Page    models.Page    `json:"page"`
}

type ResolveCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr string, ttl time.Duration) *ResolveCache {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return NewWithClient(client, ttl)
}

func NewWithClient(client *redis.Client, ttl time.Duration) *ResolveCache {
	return &ResolveCache{client: client, ttl: ttl}
}

func (c *ResolveCache) Get(ctx context.Context, projectKey, path string) (Entry, bool) {
	raw, err := c.client.Get(ctx, c.key(projectKey, path)).Bytes()
	if err != nil {
		return Entry{}, false
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Entry{}, false
	}
	return entry, true
}

func (c *ResolveCache) Set(ctx context.Context, projectKey, path string, entry Entry) {
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	// Best effort: a failed write just means the next hit resolves again.
	_ = c.client.Set(ctx, c.key(projectKey, path), raw, c.ttl).Err()
}

func (c *ResolveCache) Close() error {
	return c.client.Close()
}

func (c *ResolveCache) key(projectKey, path string) string {
	return resolveKeyPrefix + projectKey + ":" + path
}
