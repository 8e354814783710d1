package jobdesc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/telemetry"
)

const DefaultCacheTTL = 24 * time.Hour

// CachedFetcher serves successful fetches from Redis.
type CachedFetcher struct {
	Next  Source
	Redis *redis.Client
	TTL   time.Duration
}

func NewCachedFetcher(next Source, client *redis.Client, ttl time.Duration) *CachedFetcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedFetcher{Next: next, Redis: client, TTL: ttl}
}

// CacheKey returns the Redis key used for rawURL.
func CacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return "jobdesc:" + hex.EncodeToString(sum[:])
}

// Fetch returns the cached text when present; cache errors fall through to Next.
func (f *CachedFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.Redis == nil {
		return f.Next.Fetch(ctx, rawURL)
	}
	key := CacheKey(rawURL)

	cached, err := f.Redis.Get(ctx, key).Result()
	switch {
	case err == nil && cached != "":
		metrics.IncFetch("cache_hit")
		return cached, nil
	case err != nil && !errors.Is(err, redis.Nil):
		telemetry.Warn("job description cache read failed", map[string]any{"error": err.Error()})
	}

	text, err := f.Next.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if err := f.Redis.Set(ctx, key, text, f.TTL).Err(); err != nil {
		telemetry.Warn("job description cache write failed", map[string]any{"error": err.Error()})
	}
	return text, nil
}
