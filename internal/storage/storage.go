package storage

import (
	"context"

	"github.com/Arthur-so/Decentralized-scientific-journal/internal/models"
)

// Store persists the journal's append-only event log. It is the engine's
// ledger substrate: AppendEvents is the all-or-nothing boundary of a single
// engine call, and LoadEvents feeds the replay that rebuilds engine state at
// boot.
type Store interface {
	Initialize() error
	Close() error

	// AppendEvents writes all events in one transaction, in order. Either
	// every event is durably appended or none is.
	AppendEvents(ctx context.Context, events []*models.Event) error

	// LoadEvents returns the full log in ascending sequence order.
	LoadEvents(ctx context.Context) ([]*models.Event, error)
}
