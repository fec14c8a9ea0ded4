package repository

import (
	"context"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
)

type ReviewKeyRepository interface {
	CreateBatch(ctx context.Context, keys []*entity.ReviewKey) error
	List(ctx context.Context) ([]*entity.ReviewKey, error)
	// GetByCode looks up a key by its canonical code. Returns a NOT_FOUND AppError when absent.
	GetByCode(ctx context.Context, code string) (*entity.ReviewKey, error)
	// Redeem marks the key used only if it is currently unused. The returned key is nil
	// when nothing was applied.
	Redeem(ctx context.Context, code string, redemption entity.Redemption) (*entity.ReviewKey, error)
	// DeleteUnused removes the key only while it is unused. Returns PROTECTED_KEY or
	// NOT_FOUND AppErrors otherwise.
	DeleteUnused(ctx context.Context, id string) error
	// PurgeUnused removes every unused key and reports how many used keys were kept.
	PurgeUnused(ctx context.Context) (entity.PurgeResult, error)
	DeleteAll(ctx context.Context) (int, error)
}
