package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/pkg/errors"
	"github.com/Bayu5aputra/personal-profile/pkg/logger"
)

const (
	msgNameRequired    = "Please enter your name"
	msgKeyRequired     = "Please enter your review key"
	msgCommentRequired = "Please write a review"
	msgCommentTooShort = "Review must be at least 10 characters"
	msgRatingRange     = "Rating must be between 1 and 5"
	msgDuplicateReview = "You have already submitted a review for this product"
	msgKeyRedeemFailed = "Failed to use key. Please try again."
	msgReviewNotSaved  = "Failed to save review. Please try again."
)

// SubmitReviewInput is the raw submission from the review form.
type SubmitReviewInput struct {
	ProductID int
	Name      string
	Rating    int
	Comment   string
	Key       string
}

// SubmissionUseCase runs validate, redeem key, persist review, refresh aggregate in order.
// The steps are not atomic at the storage layer: a redeemed key whose review then
// fails to persist stays used.
type SubmissionUseCase struct {
	keys     *KeyUseCase
	reviews  *ReviewUseCase
	ratings  *RatingUseCase
	notifier RatingNotifier
}

func NewSubmissionUseCase(keys *KeyUseCase, reviews *ReviewUseCase, ratings *RatingUseCase, notifier RatingNotifier) *SubmissionUseCase {
	return &SubmissionUseCase{
		keys:     keys,
		reviews:  reviews,
		ratings:  ratings,
		notifier: notifier,
	}
}

func (uc *SubmissionUseCase) Submit(ctx context.Context, input SubmitReviewInput) entity.SubmissionResult {
	if rejected := uc.validate(ctx, input); rejected != nil {
		return rejected
	}

	if !uc.keys.UseKey(ctx, input.Key, input.Name, input.ProductID) {
		return reject(entity.StageRedeemingKey, errors.CodeKeyRedemption, msgKeyRedeemFailed)
	}

	added := uc.reviews.AddReview(ctx, input.ProductID, entity.ReviewInput{
		Name:    input.Name,
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if !added.Success {
		logger.Error("Key %s redeemed but review for product %d was not saved", entity.NormalizeKeyCode(input.Key), input.ProductID)
		return reject(entity.StagePersistingReview, errors.CodeReviewNotSaved, msgReviewNotSaved)
	}

	summary, dist := uc.ratings.Aggregate(ctx, input.ProductID)
	if uc.notifier != nil {
		uc.notifier.NotifyRatingUpdated(input.ProductID, summary, dist)
	}

	return &entity.Accepted{
		ReviewID:     added.ID,
		Source:       added.Source,
		Summary:      summary,
		Distribution: dist,
	}
}

// validate applies the checks in order and stops at the first failure. Nothing is
// written during validation.
func (uc *SubmissionUseCase) validate(ctx context.Context, input SubmitReviewInput) *entity.Rejected {
	if strings.TrimSpace(input.Name) == "" {
		return reject(entity.StageValidating, errors.CodeValidation, msgNameRequired)
	}

	if strings.TrimSpace(input.Key) == "" {
		return reject(entity.StageValidating, errors.CodeValidation, msgKeyRequired)
	}

	if validation := uc.keys.ValidateKey(ctx, input.Key); !validation.Valid {
		return reject(entity.StageValidating, validation.Code, validation.Message)
	}

	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return reject(entity.StageValidating, errors.CodeValidation, msgCommentRequired)
	}
	if utf8.RuneCountInString(comment) < entity.MinCommentLength {
		return reject(entity.StageValidating, errors.CodeValidation, msgCommentTooShort)
	}

	if input.Rating < 1 || input.Rating > 5 {
		return reject(entity.StageValidating, errors.CodeValidation, msgRatingRange)
	}

	if uc.reviews.HasUserReviewed(ctx, input.ProductID, input.Name) {
		return reject(entity.StageValidating, errors.CodeDuplicateReview, msgDuplicateReview)
	}

	return nil
}

func reject(stage entity.SubmissionStage, code, reason string) *entity.Rejected {
	return &entity.Rejected{Stage: stage, Code: code, Reason: reason}
}
