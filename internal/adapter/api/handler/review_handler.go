package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/internal/usecase"
	"github.com/Bayu5aputra/personal-profile/pkg/errors"
	"github.com/Bayu5aputra/personal-profile/pkg/response"
)

type ReviewHandler struct {
	reviewUseCase     *usecase.ReviewUseCase
	ratingUseCase     *usecase.RatingUseCase
	submissionUseCase *usecase.SubmissionUseCase
}

func NewReviewHandler(
	reviewUseCase *usecase.ReviewUseCase,
	ratingUseCase *usecase.RatingUseCase,
	submissionUseCase *usecase.SubmissionUseCase,
) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase:     reviewUseCase,
		ratingUseCase:     ratingUseCase,
		submissionUseCase: submissionUseCase,
	}
}

// Fields are checked by the submission workflow so that the first failing check wins.
type submitReviewRequest struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Key     string `json:"key"`
}

type ratingResponse struct {
	Average      float64                   `json:"average"`
	Count        int                       `json:"count"`
	Distribution entity.RatingDistribution `json:"distribution"`
}

func (h *ReviewHandler) GetProductReviews(c echo.Context) error {
	productID, err := parseProductID(c.Param("productId"))
	if err != nil {
		return response.Error(c, err)
	}

	reviews := h.reviewUseCase.GetProductReviews(c.Request().Context(), productID)
	return response.Success(c, reviews)
}

func (h *ReviewHandler) GetProductRating(c echo.Context) error {
	productID, err := parseProductID(c.Param("productId"))
	if err != nil {
		return response.Error(c, err)
	}

	summary, dist := h.ratingUseCase.Aggregate(c.Request().Context(), productID)
	return response.Success(c, ratingResponse{
		Average:      summary.Average,
		Count:        summary.Count,
		Distribution: dist,
	})
}

func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	productID, err := parseProductID(c.Param("productId"))
	if err != nil {
		return response.Error(c, err)
	}

	var req submitReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	result := h.submissionUseCase.Submit(c.Request().Context(), usecase.SubmitReviewInput{
		ProductID: productID,
		Name:      req.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Key:       req.Key,
	})

	switch r := result.(type) {
	case *entity.Accepted:
		return response.Created(c, r)
	case *entity.Rejected:
		return response.Fail(c, rejectionStatus(r), r.Code, r.Reason, map[string]string{"stage": string(r.Stage)})
	default:
		return response.Error(c, errors.Internal("Unexpected submission result", nil))
	}
}

func rejectionStatus(r *entity.Rejected) int {
	switch r.Code {
	case errors.CodeDuplicateReview, errors.CodeAlreadyUsed, errors.CodeKeyRedemption:
		return http.StatusConflict
	case errors.CodeStoreUnavail, errors.CodeReviewNotSaved:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

// SyncReviews uploads cache-only reviews to the primary store. Admin only.
func (h *ReviewHandler) SyncReviews(c echo.Context) error {
	result := h.reviewUseCase.SyncCacheToPrimary(c.Request().Context())
	if !result.Success {
		return response.Fail(c, http.StatusServiceUnavailable, errors.CodeStoreUnavail, "Primary store is unavailable", result)
	}
	return response.Success(c, result)
}
