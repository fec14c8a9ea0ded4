package cache

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
)

func setupTestRedis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client
}

func setupTestSQLite(t *testing.T) *SQLiteCache {
	c, err := OpenSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func sampleReviews() []*entity.Review {
	at := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
	return []*entity.Review{
		{ID: "r-2", ProductID: 12, Name: "Gita", Rating: 5, Comment: "Loved the layout", Date: at.Add(time.Hour), Source: entity.SourcePrimary},
		{ID: "r-1", ProductID: 12, Name: "Hadi", Rating: 3, Comment: "Okay but pricey", Date: at, Source: entity.SourceCache},
	}
}

func TestReviewCaches(t *testing.T) {
	caches := map[string]func(t *testing.T) repository.ReviewCache{
		"memory": func(t *testing.T) repository.ReviewCache { return NewMemoryCache() },
		"sqlite": func(t *testing.T) repository.ReviewCache { return setupTestSQLite(t) },
		"redis":  func(t *testing.T) repository.ReviewCache { return NewRedisCache(setupTestRedis(t)) },
	}

	for name, build := range caches {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c := build(t)

			empty, err := c.Get(ctx, 12)
			require.NoError(t, err)
			assert.NotNil(t, empty)
			assert.Empty(t, empty)

			require.NoError(t, c.Set(ctx, 12, sampleReviews()))
			require.NoError(t, c.Set(ctx, 3, nil))

			got, err := c.Get(ctx, 12)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "r-2", got[0].ID)
			assert.Equal(t, "gita", got[0].NameKey)
			assert.Equal(t, entity.SourceCache, got[1].Source)
			assert.True(t, got[1].Date.Equal(sampleReviews()[1].Date))

			// Set overwrites the whole blob.
			require.NoError(t, c.Set(ctx, 12, sampleReviews()[:1]))
			got, err = c.Get(ctx, 12)
			require.NoError(t, err)
			assert.Len(t, got, 1)

			ids, err := c.ProductIDs(ctx)
			require.NoError(t, err)
			assert.Equal(t, []int{3, 12}, ids)
		})
	}
}

func TestReviewCacheConcurrentUpdates(t *testing.T) {
	caches := map[string]func(t *testing.T) repository.ReviewCache{
		"memory": func(t *testing.T) repository.ReviewCache { return NewMemoryCache() },
		"sqlite": func(t *testing.T) repository.ReviewCache { return setupTestSQLite(t) },
		"redis":  func(t *testing.T) repository.ReviewCache { return NewRedisCache(setupTestRedis(t)) },
	}

	for name, build := range caches {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c := build(t)

			const writers = 10
			var wg sync.WaitGroup
			errs := make([]error, writers)
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					review := &entity.Review{ID: fmt.Sprintf("r-%d", i), ProductID: 5, Name: "Reviewer", Rating: 4}
					errs[i] = c.Update(ctx, 5, func(cached []*entity.Review) []*entity.Review {
						return append(cached, review)
					})
				}(i)
			}
			wg.Wait()

			for _, err := range errs {
				require.NoError(t, err)
			}
			got, err := c.Get(ctx, 5)
			require.NoError(t, err)
			assert.Len(t, got, writers)
		})
	}
}

func TestSQLiteCachePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	first, err := OpenSQLiteCache(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, 7, sampleReviews()))
	require.NoError(t, first.Close())

	second, err := OpenSQLiteCache(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestParseProductKey(t *testing.T) {
	id, ok := parseProductKey("product_reviews_42")
	assert.True(t, ok)
	assert.Equal(t, 42, id)

	_, ok = parseProductKey("review_keys")
	assert.False(t, ok)
	_, ok = parseProductKey("product_reviews_abc")
	assert.False(t, ok)
}
