package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
)

func seedCache(t *testing.T, f *fixture, productID int, ratings ...int) {
	t.Helper()
	reviews := make([]*entity.Review, 0, len(ratings))
	for _, rating := range ratings {
		reviews = append(reviews, &entity.Review{ProductID: productID, Rating: rating})
	}
	require.NoError(t, f.cache.Set(context.Background(), productID, reviews))
}

func TestCalculateAverageRating(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	seedCache(t, f, 1, 5, 4, 5, 3)

	assert.Equal(t, entity.RatingSummary{Average: 4.3, Count: 4}, f.ratings.CalculateAverageRating(ctx, 1))
	assert.Equal(t, entity.RatingSummary{}, f.ratings.CalculateAverageRating(ctx, 2))
}

func TestGetRatingDistribution(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	seedCache(t, f, 1, 5, 4, 5, 3)

	assert.Equal(t, entity.RatingDistribution{1: 0, 2: 0, 3: 1, 4: 1, 5: 2}, f.ratings.GetRatingDistribution(ctx, 1))

	empty := f.ratings.GetRatingDistribution(ctx, 2)
	assert.Len(t, empty, 5)
	for star := 1; star <= 5; star++ {
		assert.Zero(t, empty[star])
	}
}

func TestAggregateReflectsCacheOnly(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	// Primary-only data is not visible to the aggregator until it reaches the cache.
	require.True(t, f.reviews.AddReview(ctx, 3, input("Ana", 2)).Success)
	summary, dist := f.ratings.Aggregate(ctx, 3)
	assert.Equal(t, entity.RatingSummary{Average: 2, Count: 1}, summary)
	assert.Equal(t, 1, dist[2])
}
