package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
	"github.com/Bayu5aputra/personal-profile/pkg/errors"
)

type memoryReviewKeyRepository struct {
	mu   sync.Mutex
	keys map[string]*entity.ReviewKey
}

func NewMemoryReviewKeyRepository() repository.ReviewKeyRepository {
	return &memoryReviewKeyRepository{
		keys: make(map[string]*entity.ReviewKey),
	}
}

func (r *memoryReviewKeyRepository) CreateBatch(ctx context.Context, keys []*entity.ReviewKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, key := range keys {
		if key.ID == "" {
			key.ID = uuid.New().String()
		}
		if key.CreatedAt.IsZero() {
			key.CreatedAt = now
		}
		r.keys[key.ID] = cloneKey(key)
	}
	return nil
}

func (r *memoryReviewKeyRepository) List(ctx context.Context) ([]*entity.ReviewKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]*entity.ReviewKey, 0, len(r.keys))
	for _, key := range r.keys {
		keys = append(keys, cloneKey(key))
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].CreatedAt.After(keys[j].CreatedAt)
	})
	return keys, nil
}

func (r *memoryReviewKeyRepository) GetByCode(ctx context.Context, code string) (*entity.ReviewKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if key := r.findLocked(code); key != nil {
		return cloneKey(key), nil
	}
	return nil, errors.NotFound("Review key", nil)
}

func (r *memoryReviewKeyRepository) Redeem(ctx context.Context, code string, redemption entity.Redemption) (*entity.ReviewKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.findLocked(code)
	if key == nil || key.Used {
		return nil, nil
	}

	key.Apply(redemption)
	return cloneKey(key), nil
}

func (r *memoryReviewKeyRepository) DeleteUnused(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, ok := r.keys[id]
	if !ok {
		return errors.NotFound("Review key", nil)
	}
	if key.Protected() {
		return errors.Conflict(errors.CodeProtectedKey, "Cannot delete used key")
	}

	delete(r.keys, id)
	return nil
}

func (r *memoryReviewKeyRepository) PurgeUnused(ctx context.Context) (entity.PurgeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result entity.PurgeResult
	for id, key := range r.keys {
		if key.Protected() {
			result.Protected++
			continue
		}
		delete(r.keys, id)
		result.Deleted++
	}
	return result, nil
}

func (r *memoryReviewKeyRepository) DeleteAll(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := len(r.keys)
	r.keys = make(map[string]*entity.ReviewKey)
	return count, nil
}

func (r *memoryReviewKeyRepository) findLocked(code string) *entity.ReviewKey {
	for _, key := range r.keys {
		if key.Key == code {
			return key
		}
	}
	return nil
}

func cloneKey(key *entity.ReviewKey) *entity.ReviewKey {
	c := *key
	if key.UsedBy != nil {
		v := *key.UsedBy
		c.UsedBy = &v
	}
	if key.UsedAt != nil {
		v := *key.UsedAt
		c.UsedAt = &v
	}
	if key.ProductID != nil {
		v := *key.ProductID
		c.ProductID = &v
	}
	return &c
}
