package entity

// SubmissionStage names the step of the review submission workflow.
type SubmissionStage string

const (
	StageValidating          SubmissionStage = "validating"
	StageRedeemingKey        SubmissionStage = "redeeming_key"
	StagePersistingReview    SubmissionStage = "persisting_review"
	StageRefreshingAggregate SubmissionStage = "refreshing_aggregate"
)

// SubmissionResult is either *Accepted or *Rejected.
type SubmissionResult interface {
	isSubmissionResult()
}

// Accepted is the Submitted terminal state.
type Accepted struct {
	ReviewID     string             `json:"reviewId"`
	Source       ReviewSource       `json:"source"`
	Summary      RatingSummary      `json:"summary"`
	Distribution RatingDistribution `json:"distribution"`
}

// Rejected is the Rejected terminal state. Reason is safe to show to the submitter.
type Rejected struct {
	Stage  SubmissionStage `json:"stage"`
	Code   string          `json:"code"`
	Reason string          `json:"reason"`
}

func (*Accepted) isSubmissionResult() {}
func (*Rejected) isSubmissionResult() {}
