package handler

import (
	"strconv"

	"github.com/Bayu5aputra/personal-profile/internal/usecase"
	"github.com/Bayu5aputra/personal-profile/pkg/errors"
)

var (
	reviewHandler      *ReviewHandler
	reviewKeyHandler   *ReviewKeyHandler
	adminAuthHandler   *AdminAuthHandler
	maintenanceHandler *MaintenanceHandler
)

func Setup(
	reviewUseCase *usecase.ReviewUseCase,
	ratingUseCase *usecase.RatingUseCase,
	submissionUseCase *usecase.SubmissionUseCase,
	keyUseCase *usecase.KeyUseCase,
	adminAuthUseCase *usecase.AdminAuthUseCase,
	maintenanceUseCase *usecase.MaintenanceUseCase,
) {
	reviewHandler = NewReviewHandler(reviewUseCase, ratingUseCase, submissionUseCase)
	reviewKeyHandler = NewReviewKeyHandler(keyUseCase)
	adminAuthHandler = NewAdminAuthHandler(adminAuthUseCase)
	maintenanceHandler = NewMaintenanceHandler(maintenanceUseCase, reviewUseCase)
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetReviewKeyHandler() *ReviewKeyHandler {
	return reviewKeyHandler
}

func GetAdminAuthHandler() *AdminAuthHandler {
	return adminAuthHandler
}

func GetMaintenanceHandler() *MaintenanceHandler {
	return maintenanceHandler
}

func parseProductID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("Invalid product ID", err)
	}
	return id, nil
}
