package cache

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
)

// KeyPrefix namespaces the per-product review blobs.
const KeyPrefix = "product_reviews_"

func productKey(productID int) string {
	return fmt.Sprintf("%s%d", KeyPrefix, productID)
}

func parseProductKey(key string) (int, bool) {
	if !strings.HasPrefix(key, KeyPrefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(key, KeyPrefix))
	if err != nil {
		return 0, false
	}
	return id, true
}

func encodeReviews(reviews []*entity.Review) ([]byte, error) {
	if reviews == nil {
		reviews = []*entity.Review{}
	}
	return json.Marshal(reviews)
}

func decodeReviews(data []byte) ([]*entity.Review, error) {
	reviews := []*entity.Review{}
	if len(data) == 0 {
		return reviews, nil
	}
	if err := json.Unmarshal(data, &reviews); err != nil {
		return nil, err
	}
	for _, r := range reviews {
		r.NameKey = entity.ReviewerKey(r.Name)
	}
	return reviews, nil
}
