package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
)

// memoryReviewRepository is the primary store used when no Firebase project is
// configured (local development, tests).
type memoryReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string]*entity.Review
	now     func() time.Time
}

func NewMemoryReviewRepository() repository.ReviewRepository {
	return &memoryReviewRepository{
		reviews: make(map[string]*entity.Review),
		now:     time.Now,
	}
}

func (r *memoryReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.Date = r.now()
	if review.DateString == "" {
		review.DateString = review.Date.UTC().Format(time.RFC3339Nano)
	}
	review.Source = entity.SourcePrimary

	r.reviews[review.ID] = review.Clone()
	return nil
}

func (r *memoryReviewRepository) ListByProduct(ctx context.Context, productID int) ([]*entity.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviews := []*entity.Review{}
	for _, review := range r.reviews {
		if review.ProductID == productID {
			reviews = append(reviews, review.Clone())
		}
	}
	sortNewestFirst(reviews)

	return reviews, nil
}

func (r *memoryReviewRepository) ExistsByReviewer(ctx context.Context, productID int, nameKey string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, review := range r.reviews {
		if review.ProductID == productID && review.NameKey == nameKey {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryReviewRepository) DeleteAll(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := len(r.reviews)
	r.reviews = make(map[string]*entity.Review)
	return count, nil
}

func sortNewestFirst(reviews []*entity.Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].Date.After(reviews[j].Date)
	})
}
