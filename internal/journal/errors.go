package journal

import "errors"

// Call failures. Every failed call leaves engine state untouched.
var (
	ErrUnauthorized        = errors.New("caller lacks the required role")
	ErrNotFound            = errors.New("article not found")
	ErrDuplicateReviewer   = errors.New("reviewer already assigned to this article")
	ErrSlotsFull           = errors.New("reviewer slots full")
	ErrAlreadyReviewed     = errors.New("reviewer already cast a decision")
	ErrTerminalStatus      = errors.New("article already decided")
	ErrNotApproved         = errors.New("article is not approved")
	ErrInsufficientPayment = errors.New("payment does not match the article price")
	ErrInvalidDecision     = errors.New("decision must be 2 (approve) or 3 (reject)")
)
