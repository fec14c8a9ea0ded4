package entity

import (
	"encoding/json"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
)

const (
	keyAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	keySegments      = 3
	keySegmentLength = 4
)

var keyPattern = regexp.MustCompile(`^[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}$`)

// ReviewKey is a single-use code that unlocks one review submission.
// Used flips from false to true exactly once and never back.
type ReviewKey struct {
	ID        string     `json:"id" firestore:"id"`
	Key       string     `json:"key" firestore:"key"`
	Used      bool       `json:"used" firestore:"used"`
	UsedBy    *string    `json:"usedBy" firestore:"usedBy"`
	UsedAt    *time.Time `json:"usedAt" firestore:"usedAt"`
	ProductID *int       `json:"productId" firestore:"productId"`
	CreatedAt time.Time  `json:"createdAt" firestore:"createdAt"`
}

// Protected reports whether deletion must be refused. It mirrors Used.
func (k *ReviewKey) Protected() bool {
	return k.Used
}

// MarshalJSON adds the derived protected flag for API clients.
func (k ReviewKey) MarshalJSON() ([]byte, error) {
	type alias ReviewKey
	return json.Marshal(struct {
		alias
		Protected bool `json:"protected"`
	}{alias(k), k.Protected()})
}

// Redemption carries the fields written when a key is consumed.
type Redemption struct {
	UsedBy    string
	ProductID int
	UsedAt    time.Time
}

// Apply marks the key used. Callers must have checked Used first.
func (k *ReviewKey) Apply(r Redemption) {
	usedBy := r.UsedBy
	productID := r.ProductID
	usedAt := r.UsedAt
	k.Used = true
	k.UsedBy = &usedBy
	k.ProductID = &productID
	k.UsedAt = &usedAt
}

// GenerateKeyCode returns a XXXX-XXXX-XXXX code. The source is not cryptographic;
// keys gate a low-value action and are not credentials.
func GenerateKeyCode() string {
	var b strings.Builder
	b.Grow(keySegments*keySegmentLength + keySegments - 1)
	for i := 0; i < keySegments; i++ {
		if i > 0 {
			b.WriteByte('-')
		}
		for j := 0; j < keySegmentLength; j++ {
			b.WriteByte(keyAlphabet[rand.IntN(len(keyAlphabet))])
		}
	}
	return b.String()
}

// NormalizeKeyCode returns the canonical stored form of a user-entered code.
func NormalizeKeyCode(candidate string) string {
	return strings.ToUpper(strings.TrimSpace(candidate))
}

// IsWellFormedKeyCode reports whether code matches the canonical format.
func IsWellFormedKeyCode(code string) bool {
	return keyPattern.MatchString(code)
}

// KeyValidation is the outcome of checking a candidate code.
type KeyValidation struct {
	Valid   bool   `json:"valid"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// DeleteResult is the outcome of a single key deletion.
type DeleteResult struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// PurgeResult counts keys removed and keys kept by a bulk delete of unused keys.
type PurgeResult struct {
	Deleted   int `json:"deleted"`
	Protected int `json:"protected"`
}

// KeyStatistics summarizes the key pool. Protected always equals Used.
type KeyStatistics struct {
	Total     int     `json:"total"`
	Available int     `json:"available"`
	Used      int     `json:"used"`
	Protected int     `json:"protected"`
	UsageRate float64 `json:"usageRate"`
}
