package cache

import (
	"context"
	"fmt"
	"sort"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
)

var _ repository.ReviewCache = (*SQLiteCache)(nil)

// cacheEntry is one key/value row, mirroring browser local storage.
type cacheEntry struct {
	Key   string `gorm:"column:cache_key;primaryKey;size:64"`
	Value []byte `gorm:"column:cache_value"`
}

func (cacheEntry) TableName() string {
	return "review_cache_entries"
}

// SQLiteCache persists review blobs in a single-file SQLite database on the host.
type SQLiteCache struct {
	db *gorm.DB
}

// OpenSQLiteCache opens (or creates) the cache database at path.
func OpenSQLiteCache(path string) (*SQLiteCache, error) {
	if path == "" {
		return nil, fmt.Errorf("cache database path is required")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&cacheEntry{}); err != nil {
		return nil, err
	}

	return &SQLiteCache{db: db}, nil
}

func (c *SQLiteCache) Get(ctx context.Context, productID int) ([]*entity.Review, error) {
	var entry cacheEntry
	err := c.db.WithContext(ctx).Where("cache_key = ?", productKey(productID)).Limit(1).Find(&entry).Error
	if err != nil {
		return nil, err
	}
	return decodeReviews(entry.Value)
}

func (c *SQLiteCache) Set(ctx context.Context, productID int, reviews []*entity.Review) error {
	data, err := encodeReviews(reviews)
	if err != nil {
		return err
	}

	entry := cacheEntry{Key: productKey(productID), Value: data}
	return c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"cache_value"}),
	}).Create(&entry).Error
}

func (c *SQLiteCache) Update(ctx context.Context, productID int, mutate func([]*entity.Review) []*entity.Review) error {
	key := productKey(productID)
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry cacheEntry
		if err := tx.Where("cache_key = ?", key).Limit(1).Find(&entry).Error; err != nil {
			return err
		}
		reviews, err := decodeReviews(entry.Value)
		if err != nil {
			return err
		}
		data, err := encodeReviews(mutate(reviews))
		if err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cache_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"cache_value"}),
		}).Create(&cacheEntry{Key: key, Value: data}).Error
	})
}

func (c *SQLiteCache) ProductIDs(ctx context.Context) ([]int, error) {
	var keys []string
	err := c.db.WithContext(ctx).Model(&cacheEntry{}).
		Where("cache_key LIKE ?", KeyPrefix+"%").
		Pluck("cache_key", &keys).Error
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(keys))
	for _, key := range keys {
		if id, ok := parseProductKey(key); ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (c *SQLiteCache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
