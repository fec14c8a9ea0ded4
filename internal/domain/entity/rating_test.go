package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reviewsWithRatings(ratings ...int) []*Review {
	reviews := make([]*Review, 0, len(ratings))
	for _, r := range ratings {
		reviews = append(reviews, &Review{Rating: r})
	}
	return reviews
}

func TestSummarizeRatings(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    RatingSummary
		dist    RatingDistribution
	}{
		{
			name: "no reviews",
			want: RatingSummary{Average: 0, Count: 0},
			dist: RatingDistribution{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		},
		{
			name:    "half rounds up",
			ratings: []int{5, 4, 5, 3},
			want:    RatingSummary{Average: 4.3, Count: 4},
			dist:    RatingDistribution{1: 0, 2: 0, 3: 1, 4: 1, 5: 2},
		},
		{
			name:    "repeating decimal",
			ratings: []int{1, 2, 2},
			want:    RatingSummary{Average: 1.7, Count: 3},
			dist:    RatingDistribution{1: 1, 2: 2, 3: 0, 4: 0, 5: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, dist := SummarizeRatings(reviewsWithRatings(tt.ratings...))
			assert.Equal(t, tt.want, summary)
			assert.Equal(t, tt.dist, dist)
		})
	}
}

func TestSummarizeRatingsIsOrderIndependent(t *testing.T) {
	a, _ := SummarizeRatings(reviewsWithRatings(5, 4, 5, 3))
	b, _ := SummarizeRatings(reviewsWithRatings(3, 5, 4, 5))
	assert.Equal(t, a, b)
}
