package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
	"github.com/Bayu5aputra/personal-profile/internal/domain/service"
	"github.com/Bayu5aputra/personal-profile/pkg/logger"
)

// ReviewUseCase stores reviews in the primary store and keeps a local cache that
// serves reads when the primary store is unreachable or empty.
type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	cache      repository.ReviewCache
	status     *service.ConnectionStatus
	now        func() time.Time
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	cache repository.ReviewCache,
	status *service.ConnectionStatus,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		cache:      cache,
		status:     status,
		now:        time.Now,
	}
}

// TestConnection reports the memoized reachability of the primary store.
func (uc *ReviewUseCase) TestConnection(ctx context.Context) bool {
	return uc.status.Connected(ctx)
}

// RefreshConnection re-probes the primary store.
func (uc *ReviewUseCase) RefreshConnection(ctx context.Context) bool {
	return uc.status.Refresh(ctx)
}

// AddReview writes to the primary store and mirrors into the cache. When the primary
// store is down the review is kept in the cache only, tagged localStorage.
func (uc *ReviewUseCase) AddReview(ctx context.Context, productID int, input entity.ReviewInput) entity.AddReviewResult {
	review := entity.NewReview(productID, input, uc.now())

	if uc.status.Connected(ctx) {
		primary := review.Clone()
		err := uc.reviewRepo.Create(ctx, primary)
		if err == nil {
			if err := uc.appendToCache(ctx, productID, primary); err != nil {
				logger.LogStoreError("mirror_review", err)
			}
			logger.Info("Review %s added to primary store for product %d", primary.ID, productID)
			return entity.AddReviewResult{Success: true, ID: primary.ID, Review: primary, Source: entity.SourcePrimary}
		}
		logger.LogStoreError("add_review", err)
	}

	logger.Warn("Falling back to local cache for product %d", productID)
	review.ID = uuid.New().String()
	review.Source = entity.SourceCache
	if err := uc.appendToCache(ctx, productID, review); err != nil {
		logger.LogStoreError("add_review_cache", err)
		return entity.AddReviewResult{Success: false, Source: entity.SourceCache}
	}

	return entity.AddReviewResult{Success: true, ID: review.ID, Review: review, Source: entity.SourceCache}
}

// GetProductReviews prefers non-empty primary data, refreshing the cache with it,
// and otherwise returns the cached copy. Results are newest first.
func (uc *ReviewUseCase) GetProductReviews(ctx context.Context, productID int) []*entity.Review {
	if uc.status.Connected(ctx) {
		reviews, err := uc.reviewRepo.ListByProduct(ctx, productID)
		if err != nil {
			logger.LogStoreError("list_reviews", err)
		} else if len(reviews) > 0 {
			if err := uc.cache.Set(ctx, productID, reviews); err != nil {
				logger.LogStoreError("cache_reviews", err)
			}
			return reviews
		}
	}

	reviews, err := uc.cache.Get(ctx, productID)
	if err != nil {
		logger.LogStoreError("read_cache", err)
		return []*entity.Review{}
	}
	sortNewestFirst(reviews)
	return reviews
}

// HasUserReviewed checks the cache, then the primary store when reachable, for a
// review on productID by the same name (case-insensitive). It is best effort, not a
// uniqueness guarantee.
func (uc *ReviewUseCase) HasUserReviewed(ctx context.Context, productID int, name string) bool {
	nameKey := entity.ReviewerKey(name)
	if nameKey == "" {
		return false
	}

	cached, err := uc.cache.Get(ctx, productID)
	if err != nil {
		logger.LogStoreError("read_cache", err)
	}
	for _, review := range cached {
		if entity.ReviewerKey(review.Name) == nameKey {
			return true
		}
	}

	if !uc.status.Connected(ctx) {
		return false
	}
	exists, err := uc.reviewRepo.ExistsByReviewer(ctx, productID, nameKey)
	if err != nil {
		logger.LogStoreError("exists_by_reviewer", err)
		return false
	}
	return exists
}

// SyncCacheToPrimary uploads every cache-only review to the primary store and
// replaces the cached copy with the stored one.
func (uc *ReviewUseCase) SyncCacheToPrimary(ctx context.Context) entity.SyncResult {
	if !uc.status.Connected(ctx) {
		logger.Warn("Sync skipped: primary store unavailable")
		return entity.SyncResult{Success: false}
	}

	productIDs, err := uc.cache.ProductIDs(ctx)
	if err != nil {
		logger.LogStoreError("list_cached_products", err)
		return entity.SyncResult{Success: false}
	}

	result := entity.SyncResult{Success: true}
	for _, productID := range productIDs {
		cached, err := uc.cache.Get(ctx, productID)
		if err != nil {
			logger.LogStoreError("read_cache", err)
			result.Success = false
			continue
		}

		uploaded := make(map[string]*entity.Review)
		for _, review := range cached {
			if review.Source != entity.SourceCache {
				continue
			}

			upload := review.Clone()
			upload.ID = ""
			upload.NameKey = entity.ReviewerKey(upload.Name)
			if err := uc.reviewRepo.Create(ctx, upload); err != nil {
				logger.LogStoreError("sync_review", err)
				result.Failed++
				continue
			}
			uploaded[review.ID] = upload
			result.Count++
		}

		if len(uploaded) == 0 {
			continue
		}
		// Reviews appended since the read above must survive the write-back.
		err = uc.cache.Update(ctx, productID, func(current []*entity.Review) []*entity.Review {
			for i, review := range current {
				if upload, ok := uploaded[review.ID]; ok {
					current[i] = upload
				}
			}
			return current
		})
		if err != nil {
			logger.LogStoreError("cache_reviews", err)
			result.Success = false
		}
	}

	logger.Info("Sync completed: %d reviews uploaded, %d failed", result.Count, result.Failed)
	return result
}

func (uc *ReviewUseCase) appendToCache(ctx context.Context, productID int, review *entity.Review) error {
	return uc.cache.Update(ctx, productID, func(cached []*entity.Review) []*entity.Review {
		return append(cached, review)
	})
}

func sortNewestFirst(reviews []*entity.Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].Date.After(reviews[j].Date)
	})
}
