package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	RateLimitWindowTTL = 1 * time.Minute
)

// SearchResultsKey derives a cache key from the canonically encoded query
// string, so equivalent queries written in different parameter orders hit
// the same entry.
func SearchResultsKey(encodedQuery string) string {
	sum := sha256.Sum256([]byte(encodedQuery))
	return "search:" + hex.EncodeToString(sum[:16])
}

func RateLimitKey(clientIP string) string {
	return fmt.Sprintf("ratelimit:client:%s", clientIP)
}

func (c *Cache) GetSearchResults(ctx context.Context, encodedQuery string, dest interface{}) error {
	return c.Get(ctx, SearchResultsKey(encodedQuery), dest)
}

func (c *Cache) SetSearchResults(ctx context.Context, encodedQuery string, results interface{}, ttl time.Duration) error {
	return c.Set(ctx, SearchResultsKey(encodedQuery), results, ttl)
}

func (c *Cache) IncrementClientRateLimit(ctx context.Context, clientIP string) (int64, error) {
	return c.IncrementWithExpiry(ctx, RateLimitKey(clientIP), RateLimitWindowTTL)
}
