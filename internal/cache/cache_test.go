package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seopages-backend-go/internal/models"
)

func newTestCache(t *testing.T, ttl time.Duration) (*ResolveCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewWithClient(client, ttl), mr
}

func TestResolveCacheRoundTrip(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	entry := Entry{
		Project: models.Project{ID: "p1", Domain: "example.com", PathPrefix: "/seo", ProjectKey: "pk_abc", Status: models.ProjectStatusActive},
		Page:    models.Page{ID: "pg1", ProjectID: "p1", Path: "/intro", Title: "Intro", Content: "<p>Hi</p>", Status: models.PageStatusPublished},
	}
	c.Set(ctx, "pk_abc", "/intro", entry)

	got, ok := c.Get(ctx, "pk_abc", "/intro")
	require.True(t, ok)
	assert.Equal(t, entry.Project.ID, got.Project.ID)
	assert.Equal(t, entry.Page.Content, got.Page.Content)
}

func TestResolveCacheMiss(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(t, time.Minute)

	_, ok := c.Get(context.Background(), "pk_abc", "/intro")
	assert.False(t, ok)
}

func TestResolveCacheKeysAreDistinctPerPath(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "pk_abc", "/a", Entry{Page: models.Page{ID: "a"}})
	c.Set(ctx, "pk_abc", "/b", Entry{Page: models.Page{ID: "b"}})

	a, ok := c.Get(ctx, "pk_abc", "/a")
	require.True(t, ok)
	b, ok := c.Get(ctx, "pk_abc", "/b")
	require.True(t, ok)
	assert.NotEqual(t, a.Page.ID, b.Page.ID)
}

func TestResolveCacheExpires(t *testing.T) {
	t.Parallel()
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "pk_abc", "/intro", Entry{Page: models.Page{ID: "pg1"}})
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, "pk_abc", "/intro")
	assert.False(t, ok)
}
