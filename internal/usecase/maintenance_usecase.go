package usecase

import (
	"context"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
	"github.com/Bayu5aputra/personal-profile/pkg/logger"
)

// MaintenanceUseCase wipes primary-store collections. Admin only.
type MaintenanceUseCase struct {
	reviewRepo repository.ReviewRepository
	keyRepo    repository.ReviewKeyRepository
	prober     repository.ConnectionProber
}

func NewMaintenanceUseCase(
	reviewRepo repository.ReviewRepository,
	keyRepo repository.ReviewKeyRepository,
	prober repository.ConnectionProber,
) *MaintenanceUseCase {
	return &MaintenanceUseCase{
		reviewRepo: reviewRepo,
		keyRepo:    keyRepo,
		prober:     prober,
	}
}

func (uc *MaintenanceUseCase) Clear(ctx context.Context, opts entity.ClearOptions) entity.ClearResult {
	result := entity.ClearResult{Success: true}

	if opts.Reviews {
		n, err := uc.reviewRepo.DeleteAll(ctx)
		result.Reviews = n
		if err != nil {
			logger.LogStoreError("clear_reviews", err)
			result.Success = false
		}
	}

	if opts.Keys {
		n, err := uc.keyRepo.DeleteAll(ctx)
		result.Keys = n
		if err != nil {
			logger.LogStoreError("clear_keys", err)
			result.Success = false
		}
	}

	if opts.ConnectionTests {
		n, err := uc.prober.ClearProbes(ctx)
		result.ConnectionTests = n
		if err != nil {
			logger.LogStoreError("clear_connection_tests", err)
			result.Success = false
		}
	}

	if !result.Success {
		result.Message = "Some collections could not be cleared"
	}
	logger.Info("Cleared: %d reviews, %d keys, %d tests", result.Reviews, result.Keys, result.ConnectionTests)
	return result
}
