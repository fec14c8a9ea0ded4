package usecase

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/Bayu5aputra/personal-profile/internal/adapter/cache"
	adapterrepo "github.com/Bayu5aputra/personal-profile/internal/adapter/repository"
	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
	"github.com/Bayu5aputra/personal-profile/internal/domain/service"
)

var errUnavailable = stderrors.New("rpc error: code = Unavailable")

// flakyReviewRepository wraps the in-memory store and fails every call while down is set.
type flakyReviewRepository struct {
	repository.ReviewRepository
	down    bool
	creates int
}

func newFlakyReviewRepository() *flakyReviewRepository {
	return &flakyReviewRepository{ReviewRepository: adapterrepo.NewMemoryReviewRepository()}
}

func (r *flakyReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	r.creates++
	if r.down {
		return errUnavailable
	}
	return r.ReviewRepository.Create(ctx, review)
}

func (r *flakyReviewRepository) ListByProduct(ctx context.Context, productID int) ([]*entity.Review, error) {
	if r.down {
		return nil, errUnavailable
	}
	return r.ReviewRepository.ListByProduct(ctx, productID)
}

func (r *flakyReviewRepository) ExistsByReviewer(ctx context.Context, productID int, nameKey string) (bool, error) {
	if r.down {
		return false, errUnavailable
	}
	return r.ReviewRepository.ExistsByReviewer(ctx, productID, nameKey)
}

// flakyKeyRepository fails every call while down is set. With stealOnRedeem set,
// another submitter redeems the key just before each Redeem call.
type flakyKeyRepository struct {
	repository.ReviewKeyRepository
	down          bool
	stealOnRedeem bool
}

func newFlakyKeyRepository() *flakyKeyRepository {
	return &flakyKeyRepository{ReviewKeyRepository: adapterrepo.NewMemoryReviewKeyRepository()}
}

func (r *flakyKeyRepository) CreateBatch(ctx context.Context, keys []*entity.ReviewKey) error {
	if r.down {
		return errUnavailable
	}
	return r.ReviewKeyRepository.CreateBatch(ctx, keys)
}

func (r *flakyKeyRepository) List(ctx context.Context) ([]*entity.ReviewKey, error) {
	if r.down {
		return nil, errUnavailable
	}
	return r.ReviewKeyRepository.List(ctx)
}

func (r *flakyKeyRepository) GetByCode(ctx context.Context, code string) (*entity.ReviewKey, error) {
	if r.down {
		return nil, errUnavailable
	}
	return r.ReviewKeyRepository.GetByCode(ctx, code)
}

func (r *flakyKeyRepository) Redeem(ctx context.Context, code string, redemption entity.Redemption) (*entity.ReviewKey, error) {
	if r.down {
		return nil, errUnavailable
	}
	if r.stealOnRedeem {
		_, _ = r.ReviewKeyRepository.Redeem(ctx, code, entity.Redemption{UsedBy: "someone else", ProductID: redemption.ProductID, UsedAt: redemption.UsedAt})
	}
	return r.ReviewKeyRepository.Redeem(ctx, code, redemption)
}

// recordingNotifier captures rating notifications.
type recordingNotifier struct {
	mu     sync.Mutex
	events []entity.RatingSummary
}

func (n *recordingNotifier) NotifyRatingUpdated(productID int, summary entity.RatingSummary, distribution entity.RatingDistribution) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, summary)
}

type fixture struct {
	keyRepo    *flakyKeyRepository
	reviewRepo *flakyReviewRepository
	cache      *cache.MemoryCache
	status     *service.ConnectionStatus
	notifier   *recordingNotifier

	keys       *KeyUseCase
	reviews    *ReviewUseCase
	ratings    *RatingUseCase
	submission *SubmissionUseCase
}

func newFixture(primaryUp bool) *fixture {
	f := &fixture{
		keyRepo:    newFlakyKeyRepository(),
		reviewRepo: newFlakyReviewRepository(),
		cache:      cache.NewMemoryCache(),
		status:     service.NewKnownConnectionStatus(primaryUp),
		notifier:   &recordingNotifier{},
	}
	f.reviewRepo.down = !primaryUp

	f.keys = NewKeyUseCase(f.keyRepo, 50)
	f.reviews = NewReviewUseCase(f.reviewRepo, f.cache, f.status)
	f.ratings = NewRatingUseCase(f.cache)
	f.submission = NewSubmissionUseCase(f.keys, f.reviews, f.ratings, f.notifier)
	return f
}

// seedKey stores an unused key with a fixed code.
func (f *fixture) seedKey(code string) *entity.ReviewKey {
	key := &entity.ReviewKey{Key: code}
	if err := f.keyRepo.ReviewKeyRepository.CreateBatch(context.Background(), []*entity.ReviewKey{key}); err != nil {
		panic(err)
	}
	return key
}
