package journal

import (
	"github.com/Arthur-so/Decentralized-scientific-journal/internal/models"
)

// Stats is a read-only snapshot of the journal's aggregate state.
type Stats struct {
	Articles    int    `json:"articles"`
	Approved    int    `json:"approved"`
	Rejected    int    `json:"rejected"`
	UnderReview int    `json:"under_review"`
	Events      int    `json:"events"`
	Proceeds    uint64 `json:"proceeds"`
}

// Previews returns the catalog projections of every approved article, in
// submission order, regardless of caller.
func (e *Engine) Previews() []models.PreviewRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	previews := []models.PreviewRecord{}
	for _, article := range e.articles {
		if article.Status == models.StatusApproved {
			previews = append(previews, article.PreviewRecord())
		}
	}
	return previews
}

// CategoryArticles returns a category's approved previews in submission
// order. A category with no approved articles yet yields an entry with an
// empty name and list, which is how "nothing approved here" is distinguished
// from an error.
func (e *Engine) CategoryArticles(name string) models.Category {
	e.mu.Lock()
	defer e.mu.Unlock()

	category, ok := e.categories[name]
	if !ok {
		return models.Category{Articles: []models.PreviewRecord{}}
	}
	return models.Category{
		Name:     category.Name,
		Articles: append([]models.PreviewRecord{}, category.Articles...),
	}
}

// PurchasedArticles returns the full records of every article the caller has
// purchased, in ascending id order. This is the only bulk accessor that
// discloses content.
func (e *Engine) PurchasedArticles(caller models.Identity) []*models.Article {
	e.mu.Lock()
	defer e.mu.Unlock()

	owned := []*models.Article{}
	for _, article := range e.articles {
		if article.Purchasers[caller] {
			owned = append(owned, article.Clone())
		}
	}
	return owned
}

// PendingReviews returns the articles where the caller occupies a reviewer
// slot but has not yet voted, in assignment order. Assigned reviewers see
// full content; they cannot review what they cannot read.
func (e *Engine) PendingReviews(caller models.Identity) []*models.Article {
	e.mu.Lock()
	defer e.mu.Unlock()

	pending := []*models.Article{}
	for _, id := range e.assignments[caller] {
		article := e.articles[id]
		if !article.HasVoted(caller) && !article.Status.Terminal() {
			pending = append(pending, article.Clone())
		}
	}
	return pending
}

// Events returns the event log from sequence number since onward. The log is
// informational only; it carries no authority.
func (e *Engine) Events(since int64) []*models.Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	if since < 0 {
		since = 0
	}
	if since >= int64(len(e.events)) {
		return []*models.Event{}
	}
	out := make([]*models.Event, len(e.events)-int(since))
	copy(out, e.events[since:])
	return out
}

// Stats returns aggregate counters for observability.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Stats{
		Articles: len(e.articles),
		Events:   len(e.events),
		Proceeds: e.proceeds,
	}
	for _, article := range e.articles {
		switch article.Status {
		case models.StatusApproved:
			s.Approved++
		case models.StatusRejected:
			s.Rejected++
		case models.StatusUnderReview:
			s.UnderReview++
		}
	}
	return s
}
