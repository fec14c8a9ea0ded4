package entity

import "math"

// RatingSummary is the average rating of a product, rounded to one decimal.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// RatingDistribution counts reviews per star. Buckets 1..5 are always present.
type RatingDistribution map[int]int

func NewRatingDistribution() RatingDistribution {
	return RatingDistribution{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
}

// RoundOneDecimal rounds half away from zero at one decimal place.
func RoundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

// SummarizeRatings computes the average and histogram of a review set.
func SummarizeRatings(reviews []*Review) (RatingSummary, RatingDistribution) {
	dist := NewRatingDistribution()
	if len(reviews) == 0 {
		return RatingSummary{}, dist
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		if _, ok := dist[r.Rating]; ok {
			dist[r.Rating]++
		}
	}

	return RatingSummary{
		Average: RoundOneDecimal(float64(sum) / float64(len(reviews))),
		Count:   len(reviews),
	}, dist
}
