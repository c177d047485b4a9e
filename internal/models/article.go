package models

import "time"

// NewArticle creates a freshly submitted article with empty reviewer slots
// and zeroed tallies.
func NewArticle(id uint64, author Identity, title, content, preview, category string) *Article {
	return &Article{
		ID:          id,
		Title:       title,
		Content:     content,
		Preview:     preview,
		Category:    category,
		Author:      author,
		Reviewers:   []Identity{},
		Status:      StatusSubmitted,
		Purchasers:  make(map[Identity]bool),
		Votes:       make(map[Identity]Decision),
		SubmittedAt: time.Now(),
	}
}

// PreviewRecord returns the article's catalog projection.
func (a *Article) PreviewRecord() PreviewRecord {
	return PreviewRecord{
		ArticleID: a.ID,
		Title:     a.Title,
		Preview:   a.Preview,
	}
}

// HasReviewer reports whether id occupies one of the article's reviewer slots.
func (a *Article) HasReviewer(id Identity) bool {
	for _, r := range a.Reviewers {
		if r == id {
			return true
		}
	}
	return false
}

// HasVoted reports whether id has already cast a decision on the article.
func (a *Article) HasVoted(id Identity) bool {
	_, ok := a.Votes[id]
	return ok
}

// Redacted returns a copy safe to hand to non-purchasers: full content is
// stripped, and internal maps are not shared.
func (a *Article) Redacted() *Article {
	c := a.Clone()
	c.Content = ""
	return c
}

// Clone returns a deep copy of the article.
func (a *Article) Clone() *Article {
	c := *a
	c.Reviewers = append([]Identity{}, a.Reviewers...)
	c.Purchasers = make(map[Identity]bool, len(a.Purchasers))
	for k, v := range a.Purchasers {
		c.Purchasers[k] = v
	}
	c.Votes = make(map[Identity]Decision, len(a.Votes))
	for k, v := range a.Votes {
		c.Votes[k] = v
	}
	return &c
}
