package repository

import (
	"context"
	stderrors "errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
	"github.com/Bayu5aputra/personal-profile/pkg/errors"
	"github.com/Bayu5aputra/personal-profile/pkg/logger"
)

const reviewKeysCollection = "review_keys"

var errKeyAlreadyUsed = stderrors.New("key already used")

type firestoreReviewKeyRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewKeyRepository(client *firestore.Client) repository.ReviewKeyRepository {
	return &firestoreReviewKeyRepository{
		client: client,
	}
}

func (r *firestoreReviewKeyRepository) CreateBatch(ctx context.Context, keys []*entity.ReviewKey) error {
	if len(keys) == 0 {
		return nil
	}

	now := time.Now()
	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(keys))
	for _, key := range keys {
		if key.ID == "" {
			key.ID = uuid.New().String()
		}
		if key.CreatedAt.IsZero() {
			key.CreatedAt = now
		}

		job, err := bw.Create(r.client.Collection(reviewKeysCollection).Doc(key.ID), key)
		if err != nil {
			bw.End()
			return errors.Internal("Failed to create review keys", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return errors.Internal("Failed to create review keys", err)
		}
	}

	return nil
}

func (r *firestoreReviewKeyRepository) List(ctx context.Context) ([]*entity.ReviewKey, error) {
	iter := r.client.Collection(reviewKeysCollection).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	keys := []*entity.ReviewKey{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list review keys", err)
		}

		key, err := keyFromSnapshot(doc)
		if err != nil {
			logger.Warn("Error converting document %s to review key: %v", doc.Ref.ID, err)
			continue
		}
		keys = append(keys, key)
	}

	return keys, nil
}

func (r *firestoreReviewKeyRepository) GetByCode(ctx context.Context, code string) (*entity.ReviewKey, error) {
	iter := r.codeQuery(code).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Review key", nil)
		}
		return nil, errors.Internal("Failed to query review key", err)
	}

	key, err := keyFromSnapshot(doc)
	if err != nil {
		return nil, errors.Internal("Failed to parse review key data", err)
	}

	return key, nil
}

func (r *firestoreReviewKeyRepository) Redeem(ctx context.Context, code string, redemption entity.Redemption) (*entity.ReviewKey, error) {
	var redeemed *entity.ReviewKey

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		redeemed = nil

		docs, err := tx.Documents(r.codeQuery(code)).GetAll()
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return errors.NotFound("Review key", nil)
		}

		key, err := keyFromSnapshot(docs[0])
		if err != nil {
			return err
		}
		if key.Used {
			return errKeyAlreadyUsed
		}

		key.Apply(redemption)
		if err := tx.Update(docs[0].Ref, []firestore.Update{
			{Path: "used", Value: true},
			{Path: "usedBy", Value: redemption.UsedBy},
			{Path: "usedAt", Value: redemption.UsedAt},
			{Path: "productId", Value: redemption.ProductID},
		}); err != nil {
			return err
		}

		redeemed = key
		return nil
	})

	switch {
	case err == nil:
		return redeemed, nil
	case stderrors.Is(err, errKeyAlreadyUsed), errors.Is(err, errors.CodeNotFound):
		return nil, nil
	default:
		return nil, errors.Internal("Failed to redeem review key", err)
	}
}

func (r *firestoreReviewKeyRepository) DeleteUnused(ctx context.Context, id string) error {
	ref := r.client.Collection(reviewKeysCollection).Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Review key", err)
			}
			return err
		}

		key, err := keyFromSnapshot(doc)
		if err != nil {
			return err
		}
		if key.Protected() {
			return errors.Conflict(errors.CodeProtectedKey, "Cannot delete used key")
		}

		return tx.Delete(ref)
	})

	var appErr *errors.AppError
	if err != nil && !stderrors.As(err, &appErr) {
		return errors.Internal("Failed to delete review key", err)
	}
	return err
}

func (r *firestoreReviewKeyRepository) PurgeUnused(ctx context.Context) (entity.PurgeResult, error) {
	var result entity.PurgeResult

	keys, err := r.List(ctx)
	if err != nil {
		return result, err
	}

	for _, key := range keys {
		if key.Protected() {
			result.Protected++
			continue
		}

		// Conditional per key so a redemption racing the purge is never deleted.
		err := r.DeleteUnused(ctx, key.ID)
		switch {
		case err == nil:
			result.Deleted++
		case errors.Is(err, errors.CodeProtectedKey):
			result.Protected++
		case errors.Is(err, errors.CodeNotFound):
		default:
			return result, err
		}
	}

	return result, nil
}

func (r *firestoreReviewKeyRepository) DeleteAll(ctx context.Context) (int, error) {
	return deleteCollection(ctx, r.client, reviewKeysCollection)
}

func (r *firestoreReviewKeyRepository) codeQuery(code string) firestore.Query {
	return r.client.Collection(reviewKeysCollection).Where("key", "==", code).Limit(1)
}

func keyFromSnapshot(doc *firestore.DocumentSnapshot) (*entity.ReviewKey, error) {
	var key entity.ReviewKey
	if err := doc.DataTo(&key); err != nil {
		return nil, err
	}
	if key.ID == "" {
		key.ID = doc.Ref.ID
	}
	return &key, nil
}
