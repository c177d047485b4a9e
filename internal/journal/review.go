package journal

import (
	"context"

	"github.com/Arthur-so/Decentralized-scientific-journal/internal/models"
)

// DefineReviewer assigns a reviewer to an article's next free slot. Editors
// only; the assignee must hold the reviewer role. The first assignment moves
// the article from Submitted to UnderReview.
func (e *Engine) DefineReviewer(ctx context.Context, caller models.Identity, articleID uint64, reviewer models.Identity) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.editors[caller] {
		return ErrUnauthorized
	}
	article, err := e.article(articleID)
	if err != nil {
		return err
	}
	if !e.reviewers[reviewer] {
		return ErrUnauthorized
	}
	if article.Status.Terminal() {
		return ErrTerminalStatus
	}
	if len(article.Reviewers) >= models.MaxReviewers {
		return ErrSlotsFull
	}
	if article.HasReviewer(reviewer) {
		return ErrDuplicateReviewer
	}

	event, err := models.NewEvent(models.EventReviewerAssigned, caller, models.ReviewerAssignedPayload{
		ArticleID: articleID,
		Reviewer:  reviewer,
	})
	if err != nil {
		return err
	}
	return e.commit(ctx, []*models.Event{event})
}

// ReviewArticle casts the caller's one-shot decision on an article. When the
// vote completes the tally (one vote per assigned reviewer, however many are
// assigned), the article is decided in the same atomic call: Approved on a
// strict approve majority, Rejected otherwise.
func (e *Engine) ReviewArticle(ctx context.Context, caller models.Identity, articleID uint64, decision models.Decision) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !decision.Valid() {
		return ErrInvalidDecision
	}
	article, err := e.article(articleID)
	if err != nil {
		return err
	}
	if !article.HasReviewer(caller) {
		return ErrUnauthorized
	}
	// A second vote always reads as AlreadyReviewed, even once the article
	// is decided: a terminal article means every assigned reviewer voted.
	if article.HasVoted(caller) {
		return ErrAlreadyReviewed
	}
	if article.Status.Terminal() {
		return ErrTerminalStatus
	}

	cast, err := models.NewEvent(models.EventReviewCast, caller, models.ReviewCastPayload{
		ArticleID: articleID,
		Reviewer:  caller,
		Decision:  decision,
	})
	if err != nil {
		return err
	}
	batch := []*models.Event{cast}

	// Tally as it will stand once this vote lands.
	approves, rejects := article.ApproveCount, article.RejectCount
	if decision == models.DecisionApprove {
		approves++
	} else {
		rejects++
	}
	if article.ReviewCount+1 == len(article.Reviewers) {
		status := models.StatusRejected
		if approves > rejects {
			status = models.StatusApproved
		}
		decided, err := models.NewEvent(models.EventArticleDecided, caller, models.ArticleDecidedPayload{
			ArticleID:    articleID,
			Status:       status,
			ApproveCount: approves,
			RejectCount:  rejects,
		})
		if err != nil {
			return err
		}
		batch = append(batch, decided)
	}

	return e.commit(ctx, batch)
}
