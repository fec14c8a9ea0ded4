package repository

import (
	"context"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
)

// ReviewRepository is the durable primary store for reviews.
type ReviewRepository interface {
	// Create assigns an ID when empty and stores the review. Date is set by the store.
	Create(ctx context.Context, review *entity.Review) error
	// ListByProduct returns the product's reviews ordered by date, newest first.
	ListByProduct(ctx context.Context, productID int) ([]*entity.Review, error)
	// ExistsByReviewer reports whether nameKey already reviewed the product.
	ExistsByReviewer(ctx context.Context, productID int, nameKey string) (bool, error)
	DeleteAll(ctx context.Context) (int, error)
}

// ReviewCache is the device-scoped fallback copy of reviews, one JSON blob per product.
type ReviewCache interface {
	Get(ctx context.Context, productID int) ([]*entity.Review, error)
	Set(ctx context.Context, productID int, reviews []*entity.Review) error
	// Update applies mutate to the product's blob as one read-modify-write, so
	// concurrent writers never overwrite each other's reviews.
	Update(ctx context.Context, productID int, mutate func(reviews []*entity.Review) []*entity.Review) error
	ProductIDs(ctx context.Context) ([]int, error)
}
