package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventJournalCreated   EventType = "journal_created"
	EventRoleGranted      EventType = "role_granted"
	EventArticleSubmitted EventType = "article_submitted"
	EventReviewerAssigned EventType = "reviewer_assigned"
	EventReviewCast       EventType = "review_cast"
	EventArticleDecided   EventType = "article_decided"
	EventArticlePurchased EventType = "article_purchased"
)

type Role string

const (
	RoleEditor   Role = "editor"
	RoleAuthor   Role = "author"
	RoleReviewer Role = "reviewer"
)

// Event is one entry of the append-only journal ledger. Events are the only
// thing persisted: the engine's full state is a deterministic replay of the
// log. Hash chains each event to its predecessor, making the log
// tamper-evident.
type Event struct {
	Seq       int64           `json:"seq"`
	ID        uuid.UUID       `json:"id"`
	Type      EventType       `json:"type"`
	Caller    Identity        `json:"caller"`
	Payload   json.RawMessage `json:"payload"`
	PrevHash  string          `json:"prev_hash"`
	Hash      string          `json:"hash"`
	CreatedAt time.Time       `json:"created_at"`
}

type JournalCreatedPayload struct {
	Owner Identity `json:"owner"`
	Price uint64   `json:"price"`
}

type RoleGrantedPayload struct {
	Role    Role     `json:"role"`
	Grantee Identity `json:"grantee"`
}

type ArticleSubmittedPayload struct {
	ArticleID uint64   `json:"article_id"`
	Author    Identity `json:"author"`
	Title     string   `json:"title"`
	Content   string   `json:"content,omitempty"`
	Preview   string   `json:"preview"`
	Category  string   `json:"category"`
}

type ReviewerAssignedPayload struct {
	ArticleID uint64   `json:"article_id"`
	Reviewer  Identity `json:"reviewer"`
}

type ReviewCastPayload struct {
	ArticleID uint64   `json:"article_id"`
	Reviewer  Identity `json:"reviewer"`
	Decision  Decision `json:"decision"`
}

type ArticleDecidedPayload struct {
	ArticleID    uint64 `json:"article_id"`
	Status       Status `json:"status"`
	ApproveCount int    `json:"approve_count"`
	RejectCount  int    `json:"reject_count"`
}

type ArticlePurchasedPayload struct {
	ArticleID uint64   `json:"article_id"`
	Buyer     Identity `json:"buyer"`
	Amount    uint64   `json:"amount"`
}

// NewEvent creates an unchained event for the given caller and payload. Seq,
// PrevHash and Hash are filled in by Chain once the event's log position is
// known.
func NewEvent(typ EventType, caller Identity, payload interface{}) (*Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", typ, err)
	}
	return &Event{
		ID:        uuid.New(),
		Type:      typ,
		Caller:    caller,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Chain assigns the event its position in the log and computes its hash over
// the predecessor's hash.
func (e *Event) Chain(seq int64, prevHash string) {
	e.Seq = seq
	e.PrevHash = prevHash
	e.Hash = e.ComputeHash()
}

// ComputeHash returns the hex SHA-256 digest binding the event to its
// predecessor.
func (e *Event) ComputeHash() string {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%s|%s|%s|%s", e.Seq, e.Type, e.Caller, e.Payload, e.PrevHash)
	return hex.EncodeToString(h.Sum(nil))
}

// Verify reports whether the event's stored hash matches its contents and the
// given predecessor hash.
func (e *Event) Verify(prevHash string) bool {
	return e.PrevHash == prevHash && e.Hash == e.ComputeHash()
}
