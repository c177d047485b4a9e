package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Arthur-so/Decentralized-scientific-journal/internal/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	// The engine serializes calls itself; a single connection keeps the
	// append transaction from fighting SQLite's file lock.
	db.SetMaxOpenConns(1)

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS events (
            seq INTEGER PRIMARY KEY,
            id TEXT NOT NULL,
            type TEXT NOT NULL,
            caller TEXT NOT NULL,
            payload TEXT NOT NULL,
            prev_hash TEXT NOT NULL,
            hash TEXT NOT NULL,
            created_at DATETIME NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_events_type ON events(type)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *SQLiteStore) AppendEvents(ctx context.Context, events []*models.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO events (seq, id, type, caller, payload, prev_hash, hash, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `

	for _, event := range events {
		_, err := tx.ExecContext(ctx, query,
			event.Seq,
			event.ID.String(),
			string(event.Type),
			string(event.Caller),
			string(event.Payload),
			event.PrevHash,
			event.Hash,
			event.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("append event %d: %w", event.Seq, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) LoadEvents(ctx context.Context) ([]*models.Event, error) {
	query := `
        SELECT seq, id, type, caller, payload, prev_hash, hash, created_at
        FROM events
        ORDER BY seq ASC
    `

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var event models.Event
		var idStr, typeStr, callerStr, payloadStr string

		err := rows.Scan(
			&event.Seq,
			&idStr,
			&typeStr,
			&callerStr,
			&payloadStr,
			&event.PrevHash,
			&event.Hash,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		event.ID, _ = uuid.Parse(idStr)
		event.Type = models.EventType(typeStr)
		event.Caller = models.Identity(callerStr)
		event.Payload = []byte(payloadStr)

		events = append(events, &event)
	}

	return events, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
