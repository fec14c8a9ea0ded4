package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/pkg/errors"
)

func TestAddKeys(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	keys, err := f.keys.AddKeys(ctx, 10)
	require.NoError(t, err)
	require.Len(t, keys, 10)
	for _, key := range keys {
		assert.True(t, entity.IsWellFormedKeyCode(key.Key), key.Key)
		assert.False(t, key.Used)
		assert.NotEmpty(t, key.ID)
	}

	assert.Len(t, f.keys.GetAllKeys(ctx), 10)
}

func TestAddKeysRejectsBadCount(t *testing.T) {
	f := newFixture(true)

	for _, count := range []int{0, -1, 51} {
		_, err := f.keys.AddKeys(context.Background(), count)
		assert.Error(t, err, "count %d", count)
	}
}

func TestAddKeysStoreFailure(t *testing.T) {
	f := newFixture(true)
	f.keyRepo.down = true

	_, err := f.keys.AddKeys(context.Background(), 2)
	assert.True(t, errors.Is(err, errors.CodeStoreUnavail))
}

func TestGetAllKeysDegradesToEmpty(t *testing.T) {
	f := newFixture(true)
	f.seedKey("AAAA-BBBB-CCCC")
	f.keyRepo.down = true

	keys := f.keys.GetAllKeys(context.Background())
	assert.NotNil(t, keys)
	assert.Empty(t, keys)
}

func TestValidateKey(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	seeded := f.seedKey("AAAA-BBBB-CCCC")

	valid := f.keys.ValidateKey(ctx, " aaaa-bbbb-cccc ")
	assert.True(t, valid.Valid)
	assert.Equal(t, seeded.ID, valid.ID)
	assert.Equal(t, "Valid key", valid.Message)

	unknown := f.keys.ValidateKey(ctx, "ZZZZ-ZZZZ-ZZZZ")
	assert.False(t, unknown.Valid)
	assert.Equal(t, errors.CodeInvalidKey, unknown.Code)
	assert.Equal(t, "Invalid key", unknown.Message)

	require.True(t, f.keys.UseKey(ctx, "AAAA-BBBB-CCCC", "Dina", 4))

	used := f.keys.ValidateKey(ctx, "AAAA-BBBB-CCCC")
	assert.False(t, used.Valid)
	assert.Equal(t, errors.CodeAlreadyUsed, used.Code)
	assert.Equal(t, "This key has already been used", used.Message)

	f.keyRepo.down = true
	down := f.keys.ValidateKey(ctx, "AAAA-BBBB-CCCC")
	assert.False(t, down.Valid)
	assert.Equal(t, errors.CodeStoreUnavail, down.Code)
}

func TestUseKeySucceedsAtMostOnce(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.seedKey("AAAA-BBBB-CCCC")

	assert.True(t, f.keys.UseKey(ctx, "aaaa-bbbb-cccc", "Dina", 4))
	assert.False(t, f.keys.UseKey(ctx, "AAAA-BBBB-CCCC", "Eko", 9))

	keys := f.keys.GetAllKeys(ctx)
	require.Len(t, keys, 1)
	key := keys[0]
	assert.True(t, key.Used)
	assert.True(t, key.Protected())
	assert.Equal(t, "Dina", *key.UsedBy)
	assert.Equal(t, 4, *key.ProductID)
	require.NotNil(t, key.UsedAt)
}

func TestUseKeyUnknownOrStoreDown(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.seedKey("AAAA-BBBB-CCCC")

	assert.False(t, f.keys.UseKey(ctx, "", "Dina", 1))
	assert.False(t, f.keys.UseKey(ctx, "QQQQ-QQQQ-QQQQ", "Dina", 1))

	f.keyRepo.down = true
	assert.False(t, f.keys.UseKey(ctx, "AAAA-BBBB-CCCC", "Dina", 1))
}

func TestMalformedKeyRejectedWithoutStore(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.keyRepo.down = true

	for _, candidate := range []string{"", "hello", "AAAA-BBBB", "AAAA_BBBB_CCCC", "AAAA-BBBB-CCCC-DDDD"} {
		result := f.keys.ValidateKey(ctx, candidate)
		assert.False(t, result.Valid, candidate)
		assert.Equal(t, errors.CodeInvalidKey, result.Code, candidate)
		assert.Equal(t, "Invalid key", result.Message, candidate)
		assert.False(t, f.keys.UseKey(ctx, candidate, "Dina", 1), candidate)
	}

	// A well-formed code still reaches the store.
	assert.Equal(t, errors.CodeStoreUnavail, f.keys.ValidateKey(ctx, "aaaa-bbbb-cccc").Code)
}

func TestDeleteKeyRefusesProtected(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	used := f.seedKey("AAAA-BBBB-CCCC")
	free := f.seedKey("DDDD-EEEE-FFFF")
	require.True(t, f.keys.UseKey(ctx, used.Key, "Dina", 1))

	refused := f.keys.DeleteKey(ctx, used.ID)
	assert.False(t, refused.Success)
	assert.Equal(t, errors.CodeProtectedKey, refused.Code)

	deleted := f.keys.DeleteKey(ctx, free.ID)
	assert.True(t, deleted.Success)

	missing := f.keys.DeleteKey(ctx, free.ID)
	assert.False(t, missing.Success)
	assert.Equal(t, errors.CodeNotFound, missing.Code)

	keys := f.keys.GetAllKeys(ctx)
	require.Len(t, keys, 1)
	assert.Equal(t, used.ID, keys[0].ID)
}

func TestDeleteAllUnusedKeys(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	for _, code := range []string{"AAAA-AAAA-AAAA", "BBBB-BBBB-BBBB", "CCCC-CCCC-CCCC"} {
		f.seedKey(code)
	}
	require.True(t, f.keys.UseKey(ctx, "BBBB-BBBB-BBBB", "Dina", 1))

	result := f.keys.DeleteAllUnusedKeys(ctx)
	assert.Equal(t, entity.PurgeResult{Deleted: 2, Protected: 1}, result)

	keys := f.keys.GetAllKeys(ctx)
	require.Len(t, keys, 1)
	assert.Equal(t, "BBBB-BBBB-BBBB", keys[0].Key)
}

func TestGetKeyStatistics(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	assert.Equal(t, entity.KeyStatistics{}, f.keys.GetKeyStatistics(ctx))

	for _, code := range []string{"AAAA-AAAA-AAAA", "BBBB-BBBB-BBBB", "CCCC-CCCC-CCCC"} {
		f.seedKey(code)
	}
	require.True(t, f.keys.UseKey(ctx, "AAAA-AAAA-AAAA", "Dina", 1))

	stats := f.keys.GetKeyStatistics(ctx)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Available)
	assert.Equal(t, 1, stats.Used)
	assert.Equal(t, 1, stats.Protected)
	assert.Equal(t, 33.3, stats.UsageRate)
}
