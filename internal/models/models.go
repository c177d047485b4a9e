package models

import (
	"time"
)

// Identity is an opaque, externally verified caller reference. Callers are
// identified by these values instead of sessions or passwords.
type Identity string

// Status is an article's lifecycle state. The integer values are part of the
// external interface: a review decision is cast as the terminal status the
// reviewer votes for (2 = Approved, 3 = Rejected).
type Status int

const (
	StatusSubmitted   Status = 0
	StatusUnderReview Status = 1
	StatusApproved    Status = 2
	StatusRejected    Status = 3
)

// Terminal reports whether no further transitions are permitted.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

func (s Status) String() string {
	switch s {
	case StatusSubmitted:
		return "Submitted"
	case StatusUnderReview:
		return "UnderReview"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// Decision is a reviewer's vote, encoded with the status value it votes for.
type Decision int

const (
	DecisionApprove Decision = Decision(StatusApproved)
	DecisionReject  Decision = Decision(StatusRejected)
)

// Valid reports whether d is one of the two accepted vote encodings.
func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// MaxReviewers is the fixed capacity of an article's reviewer slots.
const MaxReviewers = 3

type Article struct {
	ID           uint64                `json:"id"`
	Title        string                `json:"title"`
	Content      string                `json:"content,omitempty"`
	Preview      string                `json:"preview"`
	Category     string                `json:"category"`
	Author       Identity              `json:"author"`
	Reviewers    []Identity            `json:"reviewers"`
	ReviewCount  int                   `json:"review_count"`
	ApproveCount int                   `json:"approve_count"`
	RejectCount  int                   `json:"reject_count"`
	Status       Status                `json:"status"`
	Purchasers   map[Identity]bool     `json:"-"`
	Votes        map[Identity]Decision `json:"-"`
	SubmittedAt  time.Time             `json:"submitted_at"`
}

// PreviewRecord is the lightweight catalog projection of an article. It never
// carries full content.
type PreviewRecord struct {
	ArticleID uint64 `json:"article_id"`
	Title     string `json:"title"`
	Preview   string `json:"preview"`
}

// Category holds the approved articles of one category, in submission order.
// A category with no approved articles yet has an empty Name.
type Category struct {
	Name     string          `json:"name"`
	Articles []PreviewRecord `json:"articles"`
}
