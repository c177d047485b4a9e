package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Arthur-so/Decentralized-scientific-journal/internal/models"
	"github.com/Arthur-so/Decentralized-scientific-journal/internal/storage"
)

// Config is the genesis configuration of a journal. It is written into the
// event log on first boot; on every later boot the log wins, so the owner and
// price are immutable after deployment.
type Config struct {
	Owner     models.Identity
	Price     uint64
	Editors   []models.Identity
	Authors   []models.Identity
	Reviewers []models.Identity
}

// Engine is the access-controlled article lifecycle engine. All state lives
// in memory and is rebuilt by replaying the store's event log; every mutating
// call validates against current state, appends its events in one store
// transaction, then applies them. A single mutex serializes calls, standing
// in for the ledger substrate's one-call-at-a-time execution.
type Engine struct {
	mu    sync.Mutex
	store storage.Store

	owner models.Identity
	price uint64

	editors   map[models.Identity]bool
	authors   map[models.Identity]bool
	reviewers map[models.Identity]bool

	articles    []*models.Article
	categories  map[string]*models.Category
	assignments map[models.Identity][]uint64
	events      []*models.Event
	tipHash     string
	proceeds    uint64
}

// NewEngine opens a journal over the given store. An empty store is seeded
// with the genesis events from cfg; a non-empty store is replayed and its
// hash chain verified, with cfg ignored beyond that.
func NewEngine(ctx context.Context, store storage.Store, cfg Config) (*Engine, error) {
	e := &Engine{
		store:       store,
		editors:     make(map[models.Identity]bool),
		authors:     make(map[models.Identity]bool),
		reviewers:   make(map[models.Identity]bool),
		categories:  make(map[string]*models.Category),
		assignments: make(map[models.Identity][]uint64),
	}

	events, err := store.LoadEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("load event log: %w", err)
	}

	if len(events) == 0 {
		if err := e.genesis(ctx, cfg); err != nil {
			return nil, err
		}
		return e, nil
	}

	for _, event := range events {
		if !event.Verify(e.tipHash) {
			return nil, fmt.Errorf("event log tampered at seq %d", event.Seq)
		}
		if err := e.apply(event); err != nil {
			return nil, fmt.Errorf("replay event %d: %w", event.Seq, err)
		}
		e.events = append(e.events, event)
		e.tipHash = event.Hash
	}

	return e, nil
}

func (e *Engine) genesis(ctx context.Context, cfg Config) error {
	if cfg.Owner == "" {
		return fmt.Errorf("genesis requires an owner identity")
	}

	created, err := models.NewEvent(models.EventJournalCreated, cfg.Owner, models.JournalCreatedPayload{
		Owner: cfg.Owner,
		Price: cfg.Price,
	})
	if err != nil {
		return err
	}
	batch := []*models.Event{created}

	grants := []struct {
		role models.Role
		ids  []models.Identity
	}{
		{models.RoleEditor, cfg.Editors},
		{models.RoleAuthor, cfg.Authors},
		{models.RoleReviewer, cfg.Reviewers},
	}
	for _, g := range grants {
		for _, id := range g.ids {
			event, err := models.NewEvent(models.EventRoleGranted, cfg.Owner, models.RoleGrantedPayload{
				Role:    g.role,
				Grantee: id,
			})
			if err != nil {
				return err
			}
			batch = append(batch, event)
		}
	}

	return e.commit(ctx, batch)
}

// commit chains, persists and applies a batch of events produced by one call.
// Callers must hold e.mu. If the store rejects the batch, no state changes.
func (e *Engine) commit(ctx context.Context, batch []*models.Event) error {
	seq := int64(len(e.events))
	prev := e.tipHash
	for _, event := range batch {
		event.Chain(seq, prev)
		seq++
		prev = event.Hash
	}

	if err := e.store.AppendEvents(ctx, batch); err != nil {
		return fmt.Errorf("append to ledger: %w", err)
	}

	for _, event := range batch {
		if err := e.apply(event); err != nil {
			// The batch was validated before commit; a failure here means
			// the engine itself produced an event it cannot apply.
			panic(fmt.Sprintf("journal: apply committed event %d: %v", event.Seq, err))
		}
		e.events = append(e.events, event)
		e.tipHash = event.Hash
	}

	return nil
}

// apply advances engine state by one event. It is the single place state
// mutates, shared by live calls and boot replay, so replay is deterministic.
func (e *Engine) apply(event *models.Event) error {
	switch event.Type {
	case models.EventJournalCreated:
		var p models.JournalCreatedPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return err
		}
		e.owner = p.Owner
		e.price = p.Price

	case models.EventRoleGranted:
		var p models.RoleGrantedPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return err
		}
		switch p.Role {
		case models.RoleEditor:
			e.editors[p.Grantee] = true
		case models.RoleAuthor:
			e.authors[p.Grantee] = true
		case models.RoleReviewer:
			e.reviewers[p.Grantee] = true
		default:
			return fmt.Errorf("unknown role %q", p.Role)
		}

	case models.EventArticleSubmitted:
		var p models.ArticleSubmittedPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return err
		}
		article := models.NewArticle(p.ArticleID, p.Author, p.Title, p.Content, p.Preview, p.Category)
		article.SubmittedAt = event.CreatedAt
		e.articles = append(e.articles, article)

	case models.EventReviewerAssigned:
		var p models.ReviewerAssignedPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return err
		}
		article, err := e.article(p.ArticleID)
		if err != nil {
			return err
		}
		article.Reviewers = append(article.Reviewers, p.Reviewer)
		e.assignments[p.Reviewer] = append(e.assignments[p.Reviewer], p.ArticleID)
		if article.Status == models.StatusSubmitted {
			article.Status = models.StatusUnderReview
		}

	case models.EventReviewCast:
		var p models.ReviewCastPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return err
		}
		article, err := e.article(p.ArticleID)
		if err != nil {
			return err
		}
		article.Votes[p.Reviewer] = p.Decision
		article.ReviewCount++
		if p.Decision == models.DecisionApprove {
			article.ApproveCount++
		} else {
			article.RejectCount++
		}

	case models.EventArticleDecided:
		var p models.ArticleDecidedPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return err
		}
		article, err := e.article(p.ArticleID)
		if err != nil {
			return err
		}
		article.Status = p.Status
		if p.Status == models.StatusApproved {
			e.indexApproved(article)
		}

	case models.EventArticlePurchased:
		var p models.ArticlePurchasedPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return err
		}
		article, err := e.article(p.ArticleID)
		if err != nil {
			return err
		}
		article.Purchasers[p.Buyer] = true
		e.proceeds += p.Amount

	default:
		return fmt.Errorf("unknown event type %q", event.Type)
	}

	return nil
}

// indexApproved adds the article to its category, creating the entry lazily
// on the category's first approval.
func (e *Engine) indexApproved(article *models.Article) {
	category, ok := e.categories[article.Category]
	if !ok {
		category = &models.Category{Name: article.Category}
		e.categories[article.Category] = category
	}
	category.Articles = append(category.Articles, article.PreviewRecord())
}

func (e *Engine) article(id uint64) (*models.Article, error) {
	if id >= uint64(len(e.articles)) {
		return nil, ErrNotFound
	}
	return e.articles[id], nil
}

// Owner returns the journal's custodial owner identity.
func (e *Engine) Owner() models.Identity {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.owner
}

// Price returns the fixed purchase price established at genesis.
func (e *Engine) Price() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.price
}
