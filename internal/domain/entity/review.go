package entity

import (
	"strings"
	"time"
)

// ReviewSource tags which backend produced or holds a copy of a review.
type ReviewSource string

const (
	SourcePrimary ReviewSource = "firebase"
	SourceCache   ReviewSource = "localStorage"
)

const MinCommentLength = 10

// Review is a single product review left by a key holder.
type Review struct {
	ID         string       `json:"id" firestore:"id"`
	ProductID  int          `json:"productId" firestore:"productId"`
	Name       string       `json:"name" firestore:"name"`
	NameKey    string       `json:"-" firestore:"nameKey"`
	Rating     int          `json:"rating" firestore:"rating"`
	Comment    string       `json:"comment" firestore:"comment"`
	Date       time.Time    `json:"date" firestore:"date,serverTimestamp"`
	DateString string       `json:"dateString" firestore:"dateString"`
	Verified   bool         `json:"verified" firestore:"verified"`
	Source     ReviewSource `json:"source" firestore:"source"`
}

// ReviewInput is the reviewer-supplied part of a review.
type ReviewInput struct {
	Name    string
	Rating  int
	Comment string
}

// ReviewerKey normalizes a display name for the one-review-per-name rule.
func ReviewerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewReview builds an unverified review stamped with the client-side time.
func NewReview(productID int, input ReviewInput, now time.Time) *Review {
	return &Review{
		ProductID:  productID,
		Name:       strings.TrimSpace(input.Name),
		NameKey:    ReviewerKey(input.Name),
		Rating:     input.Rating,
		Comment:    strings.TrimSpace(input.Comment),
		Date:       now,
		DateString: now.UTC().Format(time.RFC3339Nano),
		Verified:   false,
	}
}

// Clone returns a copy safe to hand to another storage tier.
func (r *Review) Clone() *Review {
	c := *r
	return &c
}

// AddReviewResult reports where a review ended up.
type AddReviewResult struct {
	Success bool         `json:"success"`
	ID      string       `json:"id,omitempty"`
	Review  *Review      `json:"review,omitempty"`
	Source  ReviewSource `json:"source"`
}

// SyncResult is returned by the cache-to-primary upload.
type SyncResult struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Failed  int  `json:"failed"`
}
