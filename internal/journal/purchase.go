package journal

import (
	"context"

	"github.com/Arthur-so/Decentralized-scientific-journal/internal/models"
)

// BuyArticle records an irrevocable purchase of an approved article. Any
// caller may buy; payment must match the fixed price exactly. Overpayment is
// rejected rather than retained, since there is no refund path. Proceeds are
// credited to the owner. A repeat purchase by the same buyer is accepted and
// paid for but leaves the purchaser set unchanged.
func (e *Engine) BuyArticle(ctx context.Context, caller models.Identity, articleID uint64, payment uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	article, err := e.article(articleID)
	if err != nil {
		return err
	}
	if article.Status != models.StatusApproved {
		return ErrNotApproved
	}
	if payment != e.price {
		return ErrInsufficientPayment
	}

	event, err := models.NewEvent(models.EventArticlePurchased, caller, models.ArticlePurchasedPayload{
		ArticleID: articleID,
		Buyer:     caller,
		Amount:    payment,
	})
	if err != nil {
		return err
	}
	return e.commit(ctx, []*models.Event{event})
}
