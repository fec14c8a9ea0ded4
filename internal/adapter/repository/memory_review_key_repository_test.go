package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/pkg/errors"
)

func TestMemoryRedeemAppliesOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReviewKeyRepository()
	require.NoError(t, repo.CreateBatch(ctx, []*entity.ReviewKey{{Key: "AAAA-BBBB-CCCC"}}))

	var applied int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key, err := repo.Redeem(ctx, "AAAA-BBBB-CCCC", entity.Redemption{
				UsedBy:    "reviewer",
				ProductID: i,
				UsedAt:    time.Now(),
			})
			assert.NoError(t, err)
			if key != nil {
				atomic.AddInt32(&applied, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), applied)
}

func TestMemoryDeleteUnusedRefusesUsedKey(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReviewKeyRepository()
	keys := []*entity.ReviewKey{{Key: "AAAA-BBBB-CCCC"}, {Key: "DDDD-EEEE-FFFF"}}
	require.NoError(t, repo.CreateBatch(ctx, keys))

	_, err := repo.Redeem(ctx, "AAAA-BBBB-CCCC", entity.Redemption{UsedBy: "Dina", ProductID: 1, UsedAt: time.Now()})
	require.NoError(t, err)

	err = repo.DeleteUnused(ctx, keys[0].ID)
	assert.True(t, errors.Is(err, errors.CodeProtectedKey))

	assert.NoError(t, repo.DeleteUnused(ctx, keys[1].ID))
	assert.True(t, errors.Is(repo.DeleteUnused(ctx, keys[1].ID), errors.CodeNotFound))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "AAAA-BBBB-CCCC", all[0].Key)
}

func TestMemoryListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReviewKeyRepository()
	require.NoError(t, repo.CreateBatch(ctx, []*entity.ReviewKey{{Key: "AAAA-BBBB-CCCC"}}))

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	listed[0].Used = true

	stored, err := repo.GetByCode(ctx, "AAAA-BBBB-CCCC")
	require.NoError(t, err)
	assert.False(t, stored.Used)
}
