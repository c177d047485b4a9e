package journal

import (
	"context"

	"github.com/Arthur-so/Decentralized-scientific-journal/internal/models"
)

// SubmitArticle files a new article for review. Authors only. Ids are
// allocated densely from 0 in call order and never reused.
func (e *Engine) SubmitArticle(ctx context.Context, caller models.Identity, title, content, preview, category string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.authors[caller] {
		return 0, ErrUnauthorized
	}

	id := uint64(len(e.articles))
	event, err := models.NewEvent(models.EventArticleSubmitted, caller, models.ArticleSubmittedPayload{
		ArticleID: id,
		Author:    caller,
		Title:     title,
		Content:   content,
		Preview:   preview,
		Category:  category,
	})
	if err != nil {
		return 0, err
	}
	if err := e.commit(ctx, []*models.Event{event}); err != nil {
		return 0, err
	}
	return id, nil
}

// Article returns one article record. Full content is included only when the
// caller has purchased the article, wrote it, or sits in one of its reviewer
// slots; everyone else gets the record with content redacted.
func (e *Engine) Article(caller models.Identity, id uint64) (*models.Article, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	article, err := e.article(id)
	if err != nil {
		return nil, err
	}
	if article.Purchasers[caller] || article.Author == caller || article.HasReviewer(caller) {
		return article.Clone(), nil
	}
	return article.Redacted(), nil
}
