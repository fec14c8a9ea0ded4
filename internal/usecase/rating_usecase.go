package usecase

import (
	"context"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
	"github.com/Bayu5aputra/personal-profile/pkg/logger"
)

// RatingUseCase derives rating aggregates from the local review cache. Reading the
// cache keeps aggregates instant after a local submission at the cost of lagging
// concurrent remote writes.
type RatingUseCase struct {
	cache repository.ReviewCache
}

func NewRatingUseCase(cache repository.ReviewCache) *RatingUseCase {
	return &RatingUseCase{cache: cache}
}

func (uc *RatingUseCase) CalculateAverageRating(ctx context.Context, productID int) entity.RatingSummary {
	summary, _ := entity.SummarizeRatings(uc.cached(ctx, productID))
	return summary
}

func (uc *RatingUseCase) GetRatingDistribution(ctx context.Context, productID int) entity.RatingDistribution {
	_, dist := entity.SummarizeRatings(uc.cached(ctx, productID))
	return dist
}

// Aggregate returns both the summary and the distribution from one cache read.
func (uc *RatingUseCase) Aggregate(ctx context.Context, productID int) (entity.RatingSummary, entity.RatingDistribution) {
	return entity.SummarizeRatings(uc.cached(ctx, productID))
}

func (uc *RatingUseCase) cached(ctx context.Context, productID int) []*entity.Review {
	reviews, err := uc.cache.Get(ctx, productID)
	if err != nil {
		logger.LogStoreError("read_cache", err)
		return nil
	}
	return reviews
}
