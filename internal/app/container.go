package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Bayu5aputra/personal-profile/internal/adapter/cache"
	adapterrepo "github.com/Bayu5aputra/personal-profile/internal/adapter/repository"
	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
	"github.com/Bayu5aputra/personal-profile/internal/domain/service"
	"github.com/Bayu5aputra/personal-profile/internal/infrastructure/firebase"
	"github.com/Bayu5aputra/personal-profile/internal/infrastructure/websocket"
	"github.com/Bayu5aputra/personal-profile/internal/usecase"
	"github.com/Bayu5aputra/personal-profile/pkg/config"
	"github.com/Bayu5aputra/personal-profile/pkg/logger"
)

// Container holds the wired use cases shared by the API server and keyctl.
type Container struct {
	Config *config.Config
	Status *service.ConnectionStatus

	Keys        *usecase.KeyUseCase
	Reviews     *usecase.ReviewUseCase
	Ratings     *usecase.RatingUseCase
	Submission  *usecase.SubmissionUseCase
	AdminAuth   *usecase.AdminAuthUseCase
	Maintenance *usecase.MaintenanceUseCase

	WSManager *websocket.Manager

	closers []func() error
}

// New picks Firestore when a project is configured and the in-memory store
// otherwise, and the review cache named by CACHE_DRIVER.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	var (
		reviewRepo   repository.ReviewRepository
		keyRepo      repository.ReviewKeyRepository
		prober       repository.ConnectionProber
		firebaseAuth usecase.FirebaseAuthClient
	)

	if cfg.UsesFirestore() {
		clients, err := firebase.NewClients(ctx, cfg)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, clients.Close)

		reviewRepo = adapterrepo.NewFirestoreReviewRepository(clients.Firestore)
		keyRepo = adapterrepo.NewFirestoreReviewKeyRepository(clients.Firestore)
		prober = adapterrepo.NewFirestoreConnectionProber(clients.Firestore, cfg.ConnectionTestCollection)
		firebaseAuth = firebase.NewFirebaseAuthClient(clients.Auth)
		logger.Info("Primary store: firestore (project %s)", cfg.FirebaseProject)
	} else {
		reviewRepo = adapterrepo.NewMemoryReviewRepository()
		keyRepo = adapterrepo.NewMemoryReviewKeyRepository()
		prober = adapterrepo.NewMemoryConnectionProber()
		logger.Warn("FIREBASE_PROJECT_ID not set, using in-memory primary store")
	}

	reviewCache, err := c.newCache(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Status = service.NewConnectionStatus(prober)
	c.WSManager = websocket.NewManager()

	c.Keys = usecase.NewKeyUseCase(keyRepo, cfg.MaxKeysPerRequest)
	c.Reviews = usecase.NewReviewUseCase(reviewRepo, reviewCache, c.Status)
	c.Ratings = usecase.NewRatingUseCase(reviewCache)
	c.Submission = usecase.NewSubmissionUseCase(c.Keys, c.Reviews, c.Ratings, c.WSManager)
	c.AdminAuth = usecase.NewAdminAuthUseCase(
		firebaseAuth,
		cfg.AdminPassword,
		cfg.AdminEmails,
		cfg.JWTSecret,
		time.Duration(cfg.JWTExpiry)*time.Second,
	)
	c.Maintenance = usecase.NewMaintenanceUseCase(reviewRepo, keyRepo, prober)

	return c, nil
}

func (c *Container) newCache(ctx context.Context, cfg *config.Config) (repository.ReviewCache, error) {
	switch cfg.CacheDriver {
	case "", "memory":
		logger.Info("Review cache: memory")
		return cache.NewMemoryCache(), nil

	case "sqlite":
		sqliteCache, err := cache.OpenSQLiteCache(cfg.CacheSQLitePath)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, sqliteCache.Close)
		logger.Info("Review cache: sqlite (%s)", cfg.CacheSQLitePath)
		return sqliteCache, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		c.closers = append(c.closers, client.Close)
		logger.Info("Review cache: redis (%s)", cfg.RedisAddr)
		return cache.NewRedisCache(client), nil

	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.CacheDriver)
	}
}

// Close releases store connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			logger.Warn("Close failed: %v", err)
		}
	}
	c.closers = nil
}
