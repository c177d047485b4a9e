package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Arthur-so/Decentralized-scientific-journal/internal/models"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return store
}

func chainedEvents(t *testing.T) []*models.Event {
	t.Helper()

	created, err := models.NewEvent(models.EventJournalCreated, "0xOwner", models.JournalCreatedPayload{
		Owner: "0xOwner",
		Price: 3800000000000000,
	})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	submitted, err := models.NewEvent(models.EventArticleSubmitted, "0xAuthor", models.ArticleSubmittedPayload{
		ArticleID: 0,
		Author:    "0xAuthor",
		Title:     "T",
		Content:   "C",
		Preview:   "P",
		Category:  "Cat",
	})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}

	created.Chain(0, "")
	submitted.Chain(1, created.Hash)
	return []*models.Event{created, submitted}
}

func TestAppendAndLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	events := chainedEvents(t)

	if err := store.AppendEvents(ctx, events); err != nil {
		t.Fatalf("AppendEvents: %v", err)
	}

	loaded, err := store.LoadEvents(ctx)
	if err != nil {
		t.Fatalf("LoadEvents: %v", err)
	}
	if len(loaded) != len(events) {
		t.Fatalf("loaded %d events, want %d", len(loaded), len(events))
	}

	prev := ""
	for i, event := range loaded {
		want := events[i]
		if event.Seq != want.Seq || event.ID != want.ID || event.Type != want.Type {
			t.Errorf("event %d = %+v, want %+v", i, event, want)
		}
		if event.Caller != want.Caller || string(event.Payload) != string(want.Payload) {
			t.Errorf("event %d payload mismatch", i)
		}
		if !event.Verify(prev) {
			t.Errorf("event %d fails chain verification after reload", i)
		}
		prev = event.Hash
	}
}

func TestLoadEmptyStore(t *testing.T) {
	store := openTestStore(t)

	events, err := store.LoadEvents(context.Background())
	if err != nil {
		t.Fatalf("LoadEvents: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("empty store returned %d events", len(events))
	}
}

func TestAppendIsAtomic(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	events := chainedEvents(t)

	if err := store.AppendEvents(ctx, events); err != nil {
		t.Fatalf("AppendEvents: %v", err)
	}

	// Re-appending collides on the seq primary key; nothing from the batch
	// may land.
	fresh := chainedEvents(t)
	if err := store.AppendEvents(ctx, fresh); err == nil {
		t.Fatal("expected duplicate-seq append to fail")
	}

	loaded, err := store.LoadEvents(ctx)
	if err != nil {
		t.Fatalf("LoadEvents: %v", err)
	}
	if len(loaded) != len(events) {
		t.Fatalf("loaded %d events after failed append, want %d", len(loaded), len(events))
	}
}

func TestEventsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	events := chainedEvents(t)
	if err := store.AppendEvents(ctx, events); err != nil {
		t.Fatalf("AppendEvents: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.LoadEvents(ctx)
	if err != nil {
		t.Fatalf("LoadEvents: %v", err)
	}
	if len(loaded) != len(events) || loaded[1].Hash != events[1].Hash {
		t.Fatalf("reopened store lost events: %d", len(loaded))
	}
}
