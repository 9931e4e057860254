package backtest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/four-factors/internal/datasource"
	"github.com/yourusername/four-factors/internal/models"
)

func TestStatsCacheFetchesEachKeyOnce(t *testing.T) {
	provider := newFakeProvider(testLeague)
	provider.profiles[CacheKey{TeamID: 1, Location: models.LocationHome}] = strongProfile(testLeague)
	statsCache := NewStatsCache(provider)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		p, err := statsCache.Get(ctx, 1, models.LocationHome)
		require.NoError(t, err)
		assert.Equal(t, strongProfile(testLeague), p)
	}
	_, err := statsCache.Get(ctx, 1, models.LocationRoad)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls[CacheKey{TeamID: 1, Location: models.LocationHome}])
	assert.Equal(t, 1, provider.calls[CacheKey{TeamID: 1, Location: models.LocationRoad}])
	assert.Equal(t, CacheStats{Hits: 4, Misses: 2, Entries: 2}, statsCache.Stats())
}

func TestStatsCacheRemembersFailures(t *testing.T) {
	provider := newFakeProvider(testLeague)
	key := CacheKey{TeamID: 7, Location: models.LocationRoad}
	provider.failures[key] = models.ErrDataUnavailable
	statsCache := NewStatsCache(provider)

	for i := 0; i < 3; i++ {
		_, err := statsCache.Get(context.Background(), 7, models.LocationRoad)
		assert.ErrorIs(t, err, models.ErrDataUnavailable)
	}
	assert.Equal(t, 1, provider.calls[key])
}

func TestStatsCacheDoesNotCacheCancellation(t *testing.T) {
	provider := newFakeProvider(testLeague)
	key := CacheKey{TeamID: 3, Location: models.LocationHome}
	provider.failures[key] = context.Canceled
	statsCache := NewStatsCache(provider)

	_, err := statsCache.Get(context.Background(), 3, models.LocationHome)
	require.True(t, errors.Is(err, context.Canceled))

	delete(provider.failures, key)
	_, err = statsCache.Get(context.Background(), 3, models.LocationHome)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls[key])
}

func TestStatsCacheRetriesTransientFailures(t *testing.T) {
	provider := newFakeProvider(testLeague)
	key := CacheKey{TeamID: 5, Location: models.LocationHome}
	provider.failures[key] = datasource.NewDataSourceError(datasource.SourceNBAStats,
		datasource.ErrCodeServerError, "unexpected status 503", datasource.ErrServerError)
	statsCache := NewStatsCache(provider)

	_, err := statsCache.Get(context.Background(), 5, models.LocationHome)
	require.Error(t, err)
	assert.True(t, datasource.IsCode(err, datasource.ErrCodeServerError))
	assert.Equal(t, 0, statsCache.Stats().Entries)

	delete(provider.failures, key)
	for i := 0; i < 3; i++ {
		_, err = statsCache.Get(context.Background(), 5, models.LocationHome)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, provider.calls[key])
	assert.Equal(t, CacheStats{Hits: 2, Misses: 2, Entries: 1}, statsCache.Stats())
}

func TestStatsCacheOnFetch(t *testing.T) {
	statsCache := NewStatsCache(newFakeProvider(testLeague))
	var fetched []CacheKey
	statsCache.OnFetch(func(key CacheKey) { fetched = append(fetched, key) })

	_, _ = statsCache.Get(context.Background(), 1, models.LocationHome)
	_, _ = statsCache.Get(context.Background(), 1, models.LocationHome)

	assert.Equal(t, []CacheKey{{TeamID: 1, Location: models.LocationHome}}, fetched)
	assert.Equal(t, "1:Home", fetched[0].String())
}
