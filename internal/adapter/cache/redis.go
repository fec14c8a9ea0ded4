package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
)

var _ repository.ReviewCache = (*RedisCache)(nil)

// maxUpdateAttempts bounds optimistic retries when another writer changes a watched key.
const maxUpdateAttempts = 16

// RedisCache stores one JSON blob per product under product_reviews_<id>, without expiry.
type RedisCache struct {
	client *redis.Client
	// mu serializes updates from this process; WATCH covers other processes.
	mu sync.Mutex
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, productID int) ([]*entity.Review, error) {
	data, err := c.client.Get(ctx, productKey(productID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []*entity.Review{}, nil
		}
		return nil, err
	}
	return decodeReviews(data)
}

func (c *RedisCache) Set(ctx context.Context, productID int, reviews []*entity.Review) error {
	data, err := encodeReviews(reviews)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, productKey(productID), data, 0).Err()
}

func (c *RedisCache) Update(ctx context.Context, productID int, mutate func([]*entity.Review) []*entity.Review) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := productKey(productID)
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		reviews, err := decodeReviews(data)
		if err != nil {
			return err
		}
		updated, err := encodeReviews(mutate(reviews))
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := c.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("update %s: too many concurrent writers", key)
}

func (c *RedisCache) ProductIDs(ctx context.Context) ([]int, error) {
	var ids []int
	iter := c.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if id, ok := parseProductKey(iter.Val()); ok {
			ids = append(ids, id)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Ints(ids)
	return ids, nil
}
