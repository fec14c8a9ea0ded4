package usecase

import (
	"context"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
)

// FirebaseAuthClient verifies Firebase ID tokens for CMS sign-in.
type FirebaseAuthClient interface {
	// VerifyEmail returns the verified e-mail address carried by idToken.
	VerifyEmail(ctx context.Context, idToken string) (string, error)
}

// RatingNotifier is told about fresh aggregates after a review is accepted.
type RatingNotifier interface {
	NotifyRatingUpdated(productID int, summary entity.RatingSummary, distribution entity.RatingDistribution)
}
