package cache_test

import (
	"context"
	"shortener/pkg/cache"
	"shortener/pkg/domain"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() {
		_ = rdb.Close()
		_ = container.Terminate(ctx)
	})

	return rdb
}

func TestRedis(t *testing.T) {
	rdb := setupRedis(t)
	c := cache.New(rdb, time.Minute)
	ctx := context.Background()

	link := domain.Link{
		Code:      "abcd1234",
		URL:       "https://example.com",
		Clicks:    3,
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.Nil(t, c.Get(ctx, link.Code))

	c.Set(ctx, link)
	got := c.Get(ctx, link.Code)
	require.NotNil(t, got)
	require.Equal(t, link.URL, got.URL)
	require.Equal(t, link.Clicks, got.Clicks)
	require.True(t, link.CreatedAt.Equal(got.CreatedAt))

	ttl, err := rdb.TTL(ctx, "link:abcd1234").Result()
	require.NoError(t, err)
	require.Positive(t, ttl)
	require.LessOrEqual(t, ttl, time.Minute)

	require.NoError(t, rdb.Del(ctx, "link:abcd1234").Err())
	require.Nil(t, c.Get(ctx, link.Code))
}

func TestRedis_corruptEntryIsMiss(t *testing.T) {
	rdb := setupRedis(t)
	c := cache.New(rdb, 0)
	ctx := context.Background()

	require.NoError(t, rdb.Set(ctx, "link:broken00", "{not json", time.Minute).Err())
	require.Nil(t, c.Get(ctx, "broken00"))
}

func TestRedis_unreachableIsMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	c := cache.New(rdb, time.Minute)
	ctx := context.Background()

	c.Set(ctx, domain.Link{Code: "abcd1234", URL: "https://example.com"})
	require.Nil(t, c.Get(ctx, "abcd1234"))
}

func TestNew_nilClientIsNoop(t *testing.T) {
	c := cache.New(nil, time.Minute)
	require.IsType(t, cache.Noop{}, c)

	ctx := context.Background()
	c.Set(ctx, domain.Link{Code: "abcd1234", URL: "https://example.com"})
	require.Nil(t, c.Get(ctx, "abcd1234"))
}
