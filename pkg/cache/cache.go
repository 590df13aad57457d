// Package cache provides a read-through cache for resolved links. Cache
// failures never fail the caller: they are logged and treated as misses.
//
//go:generate mockgen -package mockcache -source=cache.go -destination=mock/mockcache.go *
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"shortener/pkg/domain"
	"shortener/pkg/logger"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	linkKeyPrefix = "link:"

	// DefaultTTL is used when no positive TTL is configured.
	DefaultTTL = 10 * time.Minute
)

// LinkCache stores links by short code.
type LinkCache interface {
	// Get returns the cached link for code, or nil on a miss.
	Get(ctx context.Context, code domain.ShortCode) *domain.Link
	// Set caches link under its code.
	Set(ctx context.Context, link domain.Link)
}

// Compile-time interface checks.
var (
	_ LinkCache = (*Redis)(nil)
	_ LinkCache = Noop{}
)

// Redis implements LinkCache on a redis client.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// New returns a redis backed cache, or a Noop cache when rdb is nil.
func New(rdb *redis.Client, ttl time.Duration) LinkCache {
	if rdb == nil {
		return Noop{}
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Redis{rdb: rdb, ttl: ttl}
}

func key(code domain.ShortCode) string {
	return linkKeyPrefix + code.String()
}

// Get implements LinkCache.
func (c *Redis) Get(ctx context.Context, code domain.ShortCode) *domain.Link {
	data, err := c.rdb.Get(ctx, key(code)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn(ctx, "could not get link from cache", zap.String("code", code.String()), zap.Error(err))
		}

		return nil
	}

	var link domain.Link
	if err := json.Unmarshal(data, &link); err != nil {
		logger.Warn(ctx, "could not unmarshal cached link", zap.String("code", code.String()), zap.Error(err))

		return nil
	}

	return &link
}

// Set implements LinkCache.
func (c *Redis) Set(ctx context.Context, link domain.Link) {
	data, err := json.Marshal(link)
	if err != nil {
		logger.Warn(ctx, "could not marshal link for cache", zap.Error(err))

		return
	}

	if err := c.rdb.Set(ctx, key(link.Code), data, c.ttl).Err(); err != nil {
		logger.Warn(ctx, "could not cache link", zap.String("code", link.Code.String()), zap.Error(err))
	}
}

// Noop is a LinkCache that stores nothing. It is used when redis is not
// configured.
type Noop struct{}

func (Noop) Get(context.Context, domain.ShortCode) *domain.Link { return nil }
func (Noop) Set(context.Context, domain.Link)                    {}
