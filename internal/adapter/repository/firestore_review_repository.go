package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
	"github.com/Bayu5aputra/personal-profile/pkg/errors"
	"github.com/Bayu5aputra/personal-profile/pkg/logger"
)

const reviewsCollection = "reviews"

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.DateString == "" {
		review.DateString = time.Now().UTC().Format(time.RFC3339Nano)
	}
	review.Source = entity.SourcePrimary

	// A zero Date is filled in by the server.
	review.Date = time.Time{}

	wr, err := r.client.Collection(reviewsCollection).Doc(review.ID).Set(ctx, review)
	if err != nil {
		return errors.Internal("Failed to create review", err)
	}
	review.Date = wr.UpdateTime

	return nil
}

func (r *firestoreReviewRepository) ListByProduct(ctx context.Context, productID int) ([]*entity.Review, error) {
	query := r.client.Collection(reviewsCollection).
		Where("productId", "==", productID).
		OrderBy("date", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	reviews := []*entity.Review{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to query reviews", err)
		}

		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			logger.Warn("Error converting document %s to review: %v", doc.Ref.ID, err)
			continue
		}
		if review.ID == "" {
			review.ID = doc.Ref.ID
		}

		reviews = append(reviews, &review)
	}

	return reviews, nil
}

func (r *firestoreReviewRepository) ExistsByReviewer(ctx context.Context, productID int, nameKey string) (bool, error) {
	query := r.client.Collection(reviewsCollection).
		Where("productId", "==", productID).
		Where("nameKey", "==", nameKey).
		Limit(1)

	iter := query.Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, errors.Internal("Failed to query reviews", err)
	}

	return true, nil
}

func (r *firestoreReviewRepository) DeleteAll(ctx context.Context) (int, error) {
	return deleteCollection(ctx, r.client, reviewsCollection)
}

// deleteCollection removes every document of a collection through a bulk writer and
// returns how many deletes the server confirmed.
func deleteCollection(ctx context.Context, client *firestore.Client, collection string) (int, error) {
	iter := client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	bw := client.BulkWriter(ctx)
	var jobs []*firestore.BulkWriterJob
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bw.End()
			return confirmedDeletes(jobs), errors.Internal("Failed to list "+collection, err)
		}

		job, err := bw.Delete(doc.Ref)
		if err != nil {
			bw.End()
			return confirmedDeletes(jobs), errors.Internal("Failed to delete from "+collection, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	return confirmedDeletes(jobs), nil
}

func confirmedDeletes(jobs []*firestore.BulkWriterJob) int {
	count := 0
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			logger.Warn("Bulk delete failed: %v", err)
			continue
		}
		count++
	}
	return count
}
