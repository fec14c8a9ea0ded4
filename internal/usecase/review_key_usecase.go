package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
	"github.com/Bayu5aputra/personal-profile/pkg/errors"
	"github.com/Bayu5aputra/personal-profile/pkg/logger"
)

const (
	msgInvalidKey    = "Invalid key"
	msgKeyUsed       = "This key has already been used"
	msgValidKey      = "Valid key"
	msgKeyCheckFail  = "Unable to verify key right now. Please try again later."
	msgProtectedKey  = "Cannot delete used key. This key is protected because it has been used for a review."
	msgKeyDeleted    = "Key deleted successfully"
	msgKeyNotFound   = "Key not found"
	msgKeyDeleteFail = "Failed to delete key"
)

// KeyUseCase manages the pool of single-use review keys.
type KeyUseCase struct {
	keyRepo repository.ReviewKeyRepository
	maxKeys int
	now     func() time.Time
}

func NewKeyUseCase(keyRepo repository.ReviewKeyRepository, maxKeys int) *KeyUseCase {
	if maxKeys <= 0 {
		maxKeys = 100
	}
	return &KeyUseCase{
		keyRepo: keyRepo,
		maxKeys: maxKeys,
		now:     time.Now,
	}
}

func (uc *KeyUseCase) GenerateKey() string {
	return entity.GenerateKeyCode()
}

// AddKeys creates count unused keys and returns them.
func (uc *KeyUseCase) AddKeys(ctx context.Context, count int) ([]*entity.ReviewKey, error) {
	if count < 1 || count > uc.maxKeys {
		return nil, errors.BadRequest(fmt.Sprintf("Count must be between 1 and %d", uc.maxKeys), nil)
	}

	now := uc.now()
	seen := make(map[string]struct{}, count)
	keys := make([]*entity.ReviewKey, 0, count)
	for len(keys) < count {
		code := uc.GenerateKey()
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		keys = append(keys, &entity.ReviewKey{
			Key:       code,
			CreatedAt: now,
		})
	}

	if err := uc.keyRepo.CreateBatch(ctx, keys); err != nil {
		logger.LogStoreError("add_keys", err)
		return nil, errors.ServiceUnavailable("Failed to create keys", err)
	}

	logger.Info("Created %d review keys", len(keys))
	return keys, nil
}

// GetAllKeys returns every key. A store failure yields an empty list.
func (uc *KeyUseCase) GetAllKeys(ctx context.Context) []*entity.ReviewKey {
	keys, err := uc.keyRepo.List(ctx)
	if err != nil {
		logger.LogStoreError("list_keys", err)
		return []*entity.ReviewKey{}
	}
	return keys
}

func (uc *KeyUseCase) ValidateKey(ctx context.Context, candidate string) entity.KeyValidation {
	code := entity.NormalizeKeyCode(candidate)
	if !entity.IsWellFormedKeyCode(code) {
		return entity.KeyValidation{Code: errors.CodeInvalidKey, Message: msgInvalidKey}
	}

	key, err := uc.keyRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return entity.KeyValidation{Code: errors.CodeInvalidKey, Message: msgInvalidKey}
		}
		logger.LogStoreError("validate_key", err)
		return entity.KeyValidation{Code: errors.CodeStoreUnavail, Message: msgKeyCheckFail}
	}

	if key.Used {
		return entity.KeyValidation{Code: errors.CodeAlreadyUsed, Message: msgKeyUsed}
	}

	return entity.KeyValidation{Valid: true, Message: msgValidKey, ID: key.ID}
}

// UseKey redeems the key for usedBy on productID. It returns false when the key is
// unknown, already used (including a lost race) or the store failed.
func (uc *KeyUseCase) UseKey(ctx context.Context, candidate, usedBy string, productID int) bool {
	code := entity.NormalizeKeyCode(candidate)
	if !entity.IsWellFormedKeyCode(code) {
		return false
	}

	redeemed, err := uc.keyRepo.Redeem(ctx, code, entity.Redemption{
		UsedBy:    strings.TrimSpace(usedBy),
		ProductID: productID,
		UsedAt:    uc.now(),
	})
	if err != nil {
		logger.LogStoreError("use_key", err)
		return false
	}
	if redeemed == nil {
		logger.Info("Key %s was not redeemed: unknown or already used", code)
		return false
	}

	logger.Info("Key %s redeemed for product %d", code, productID)
	return true
}

func (uc *KeyUseCase) DeleteKey(ctx context.Context, id string) entity.DeleteResult {
	err := uc.keyRepo.DeleteUnused(ctx, id)
	switch {
	case err == nil:
		return entity.DeleteResult{Success: true, Message: msgKeyDeleted}
	case errors.Is(err, errors.CodeProtectedKey):
		return entity.DeleteResult{Code: errors.CodeProtectedKey, Message: msgProtectedKey}
	case errors.Is(err, errors.CodeNotFound):
		return entity.DeleteResult{Code: errors.CodeNotFound, Message: msgKeyNotFound}
	default:
		logger.LogStoreError("delete_key", err)
		return entity.DeleteResult{Code: errors.CodeStoreUnavail, Message: msgKeyDeleteFail}
	}
}

// DeleteAllUnusedKeys removes every unused key and keeps the used ones.
func (uc *KeyUseCase) DeleteAllUnusedKeys(ctx context.Context) entity.PurgeResult {
	result, err := uc.keyRepo.PurgeUnused(ctx)
	if err != nil {
		logger.LogStoreError("purge_unused_keys", err)
	}
	return result
}

func (uc *KeyUseCase) GetKeyStatistics(ctx context.Context) entity.KeyStatistics {
	keys := uc.GetAllKeys(ctx)

	stats := entity.KeyStatistics{Total: len(keys)}
	for _, key := range keys {
		if key.Used {
			stats.Used++
		} else {
			stats.Available++
		}
	}
	stats.Protected = stats.Used
	if stats.Total > 0 {
		stats.UsageRate = entity.RoundOneDecimal(float64(stats.Used) / float64(stats.Total) * 100)
	}

	return stats
}
