package backtest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/four-factors/internal/datasource"
	"github.com/yourusername/four-factors/internal/metrics"
	"github.com/yourusername/four-factors/internal/models"
)

// CacheKey identifies one team's statistics for one venue split
type CacheKey struct {
	TeamID   int64
	Location models.Location
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%d:%s", k.TeamID, k.Location)
}

// cacheEntry holds either a profile or the error that retrieving it produced
type cacheEntry struct {
	profile models.FourFactors
	err     error
}

// CacheStats reports cache effectiveness for one run
type CacheStats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// StatsCache memoises per-team Four Factors lookups for the lifetime of a
// single run. Entries never expire and are never replaced. Permanent
// failures such as missing data are cached too, so those keys reach the
// provider at most once; transient provider errors are not.
type StatsCache struct {
	provider  datasource.StatsProvider
	cache     *cache.Cache
	hitCount  atomic.Uint64
	missCount atomic.Uint64
	onFetch   func(key CacheKey)
}

// NewStatsCache creates an empty run-scoped cache in front of provider
func NewStatsCache(provider datasource.StatsProvider) *StatsCache {
	return &StatsCache{
		provider: provider,
		cache:    cache.New(cache.NoExpiration, 0),
	}
}

// OnFetch registers a callback invoked for every provider retrieval
func (c *StatsCache) OnFetch(fn func(key CacheKey)) {
	c.onFetch = fn
}

// Get returns the profile for teamID at location, fetching it on first use
func (c *StatsCache) Get(ctx context.Context, teamID int64, location models.Location) (models.FourFactors, error) {
	key := CacheKey{TeamID: teamID, Location: location}

	if item, found := c.cache.Get(key.String()); found {
		c.hitCount.Add(1)
		metrics.RecordCacheHit()
		entry := item.(cacheEntry)
		return entry.profile, entry.err
	}

	c.missCount.Add(1)
	metrics.RecordCacheMiss()
	if c.onFetch != nil {
		c.onFetch(key)
	}

	profile, err := c.provider.TeamFourFactors(ctx, teamID, location)
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		// cancellation says nothing about the key
		return models.FourFactors{}, err
	}
	if err != nil && datasource.IsTransient(err) {
		// retried on the key's next lookup
		return models.FourFactors{}, err
	}

	// Add refuses to overwrite, keeping entries insert-only
	_ = c.cache.Add(key.String(), cacheEntry{profile: profile, err: err}, cache.NoExpiration)
	return profile, err
}

// Stats returns hit, miss and entry counts
func (c *StatsCache) Stats() CacheStats {
	return CacheStats{
		Hits:    c.hitCount.Load(),
		Misses:  c.missCount.Load(),
		Entries: c.cache.ItemCount(),
	}
}
