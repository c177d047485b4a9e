package journal

import (
	"context"
	"errors"
	"testing"

	"github.com/Arthur-so/Decentralized-scientific-journal/internal/models"
)

func approveArticle(t *testing.T, engine *Engine, id uint64) {
	t.Helper()

	assignReviewers(t, engine, id, reviewer1, reviewer2, reviewer3)
	castVotes(t, engine, id, map[models.Identity]models.Decision{
		reviewer1: models.DecisionApprove,
		reviewer2: models.DecisionApprove,
		reviewer3: models.DecisionApprove,
	})
}

func TestBuyApprovedArticle(t *testing.T) {
	engine, _ := newTestEngine(t)
	id := submit(t, engine, "A")
	approveArticle(t, engine, id)

	if err := engine.BuyArticle(context.Background(), buyer1, id, testPrice); err != nil {
		t.Fatalf("BuyArticle: %v", err)
	}

	owned := engine.PurchasedArticles(buyer1)
	if len(owned) != 1 {
		t.Fatalf("owned = %d articles, want 1", len(owned))
	}
	if owned[0].Content != "Content of A" {
		t.Errorf("purchased content = %q", owned[0].Content)
	}
	if engine.Stats().Proceeds != testPrice {
		t.Errorf("proceeds = %d, want %d", engine.Stats().Proceeds, testPrice)
	}
}

func TestBuyRequiresApprovedStatus(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	pending := submit(t, engine, "A")
	rejected := submit(t, engine, "B")
	assignReviewers(t, engine, rejected, reviewer1)
	castVotes(t, engine, rejected, map[models.Identity]models.Decision{reviewer1: models.DecisionReject})

	for _, id := range []uint64{pending, rejected} {
		if err := engine.BuyArticle(ctx, buyer1, id, testPrice); !errors.Is(err, ErrNotApproved) {
			t.Errorf("buy article %d: got %v, want ErrNotApproved", id, err)
		}
	}
	if err := engine.BuyArticle(ctx, buyer1, 9, testPrice); !errors.Is(err, ErrNotFound) {
		t.Errorf("buy unknown article: got %v, want ErrNotFound", err)
	}
	if got := engine.PurchasedArticles(buyer1); len(got) != 0 {
		t.Errorf("failed purchases recorded ownership: %d articles", len(got))
	}
}

func TestBuyRequiresExactPayment(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	id := submit(t, engine, "A")
	approveArticle(t, engine, id)

	for _, payment := range []uint64{0, testPrice - 1, testPrice + 1, 2 * testPrice} {
		if err := engine.BuyArticle(ctx, buyer1, id, payment); !errors.Is(err, ErrInsufficientPayment) {
			t.Errorf("payment %d: got %v, want ErrInsufficientPayment", payment, err)
		}
	}
	if got := engine.PurchasedArticles(buyer1); len(got) != 0 {
		t.Errorf("mispriced purchase recorded ownership: %d articles", len(got))
	}
	if engine.Stats().Proceeds != 0 {
		t.Errorf("proceeds = %d after failed purchases", engine.Stats().Proceeds)
	}
}

func TestRepeatPurchaseKeepsSingleMembership(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	id := submit(t, engine, "A")
	approveArticle(t, engine, id)

	for i := 0; i < 2; i++ {
		if err := engine.BuyArticle(ctx, buyer1, id, testPrice); err != nil {
			t.Fatalf("purchase %d: %v", i, err)
		}
	}
	if owned := engine.PurchasedArticles(buyer1); len(owned) != 1 {
		t.Fatalf("owned = %d articles after repeat purchase, want 1", len(owned))
	}
	// Both transfers happened.
	if engine.Stats().Proceeds != 2*testPrice {
		t.Errorf("proceeds = %d, want %d", engine.Stats().Proceeds, 2*testPrice)
	}
}

func TestPurchasedArticlesAreCallerScoped(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	var ids []uint64
	for _, title := range []string{"A", "B", "C"} {
		id := submit(t, engine, title)
		approveArticle(t, engine, id)
		ids = append(ids, id)
	}

	// buyer1 buys the later article first; results must still come back in
	// ascending id order.
	for _, id := range []uint64{ids[1], ids[0]} {
		if err := engine.BuyArticle(ctx, buyer1, id, testPrice); err != nil {
			t.Fatalf("buyer1 purchase %d: %v", id, err)
		}
	}
	if err := engine.BuyArticle(ctx, buyer2, ids[2], testPrice); err != nil {
		t.Fatalf("buyer2 purchase: %v", err)
	}

	owned1 := engine.PurchasedArticles(buyer1)
	if len(owned1) != 2 || owned1[0].ID != ids[0] || owned1[1].ID != ids[1] {
		t.Fatalf("buyer1 owned = %v", pendingIDs(owned1))
	}
	if owned1[0].Title != "A" || owned1[1].Content != "Content of B" {
		t.Errorf("buyer1 records = %+v", owned1)
	}

	owned2 := engine.PurchasedArticles(buyer2)
	if len(owned2) != 1 || owned2[0].ID != ids[2] || owned2[0].Title != "C" {
		t.Fatalf("buyer2 owned = %v", pendingIDs(owned2))
	}
}

func TestCategoryIndexPopulatedOnApproval(t *testing.T) {
	engine, _ := newTestEngine(t)

	// Before any approval a lookup yields an empty name, not an error.
	if got := engine.CategoryArticles("Cat"); got.Name != "" || len(got.Articles) != 0 {
		t.Fatalf("empty category = %+v", got)
	}

	id := submit(t, engine, "A")
	approveArticle(t, engine, id)

	got := engine.CategoryArticles("Cat")
	if got.Name != "Cat" {
		t.Fatalf("category name = %q, want Cat", got.Name)
	}
	if len(got.Articles) != 1 || got.Articles[0].ArticleID != id || got.Articles[0].Title != "A" {
		t.Fatalf("category articles = %+v", got.Articles)
	}
}

func TestRejectedArticleStaysOutOfCategory(t *testing.T) {
	engine, _ := newTestEngine(t)
	id := submit(t, engine, "A")
	assignReviewers(t, engine, id, reviewer1, reviewer2, reviewer3)
	castVotes(t, engine, id, map[models.Identity]models.Decision{
		reviewer1: models.DecisionApprove,
		reviewer2: models.DecisionReject,
		reviewer3: models.DecisionReject,
	})

	if err := engine.BuyArticle(context.Background(), buyer1, id, testPrice); !errors.Is(err, ErrNotApproved) {
		t.Fatalf("buy rejected article: got %v, want ErrNotApproved", err)
	}
	if got := engine.CategoryArticles("Cat"); got.Name != "" || len(got.Articles) != 0 {
		t.Fatalf("rejected article indexed: %+v", got)
	}
}

func TestPreviewsListApprovedInSubmissionOrder(t *testing.T) {
	engine, _ := newTestEngine(t)

	first := submit(t, engine, "A")
	second := submit(t, engine, "B")
	third := submit(t, engine, "C")

	// Approve out of submission order.
	approveArticle(t, engine, third)
	approveArticle(t, engine, first)
	assignReviewers(t, engine, second, reviewer1)
	castVotes(t, engine, second, map[models.Identity]models.Decision{reviewer1: models.DecisionReject})

	previews := engine.Previews()
	if len(previews) != 2 || previews[0].ArticleID != first || previews[1].ArticleID != third {
		t.Fatalf("previews = %+v", previews)
	}
	if previews[0].Preview != "Preview of A" {
		t.Errorf("preview text = %q", previews[0].Preview)
	}
}

func TestEventsRecordSubmissionAndPurchase(t *testing.T) {
	engine, _ := newTestEngine(t)
	id := submit(t, engine, "A")
	approveArticle(t, engine, id)
	if err := engine.BuyArticle(context.Background(), buyer1, id, testPrice); err != nil {
		t.Fatalf("BuyArticle: %v", err)
	}

	var types []models.EventType
	for _, event := range engine.Events(0) {
		types = append(types, event.Type)
	}

	counts := map[models.EventType]int{}
	for _, typ := range types {
		counts[typ]++
	}
	if counts[models.EventArticleSubmitted] != 1 || counts[models.EventArticlePurchased] != 1 {
		t.Fatalf("event types = %v", types)
	}
	if counts[models.EventReviewCast] != 3 || counts[models.EventArticleDecided] != 1 {
		t.Fatalf("event types = %v", types)
	}

	// Events carry dense sequence numbers in order.
	for i, event := range engine.Events(0) {
		if event.Seq != int64(i) {
			t.Fatalf("event %d has seq %d", i, event.Seq)
		}
	}

	if got := engine.Events(int64(len(types))); len(got) != 0 {
		t.Fatalf("Events past the tip = %d entries", len(got))
	}
}
