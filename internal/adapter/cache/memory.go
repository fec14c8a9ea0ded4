package cache

import (
	"context"
	"sort"
	"sync"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
)

var _ repository.ReviewCache = (*MemoryCache)(nil)

// MemoryCache keeps encoded blobs in process memory. Blobs are stored encoded so
// callers never share review pointers with the cache.
type MemoryCache struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{blobs: make(map[string][]byte)}
}

func (c *MemoryCache) Get(ctx context.Context, productID int) ([]*entity.Review, error) {
	c.mu.RLock()
	data := c.blobs[productKey(productID)]
	c.mu.RUnlock()

	return decodeReviews(data)
}

func (c *MemoryCache) Set(ctx context.Context, productID int, reviews []*entity.Review) error {
	data, err := encodeReviews(reviews)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.blobs[productKey(productID)] = data
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Update(ctx context.Context, productID int, mutate func([]*entity.Review) []*entity.Review) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := productKey(productID)
	reviews, err := decodeReviews(c.blobs[key])
	if err != nil {
		return err
	}
	data, err := encodeReviews(mutate(reviews))
	if err != nil {
		return err
	}
	c.blobs[key] = data
	return nil
}

func (c *MemoryCache) ProductIDs(ctx context.Context) ([]int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]int, 0, len(c.blobs))
	for key := range c.blobs {
		if id, ok := parseProductKey(key); ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids, nil
}
