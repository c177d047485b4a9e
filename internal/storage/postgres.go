package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/Arthur-so/Decentralized-scientific-journal/internal/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS events (
            seq BIGINT PRIMARY KEY,
            id UUID NOT NULL,
            type VARCHAR(64) NOT NULL,
            caller TEXT NOT NULL,
            payload JSONB NOT NULL,
            prev_hash VARCHAR(64) NOT NULL,
            hash VARCHAR(64) NOT NULL,
            created_at TIMESTAMP NOT NULL
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

func (s *PostgresStore) AppendEvents(ctx context.Context, events []*models.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO events (seq, id, type, caller, payload, prev_hash, hash, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `

	for _, event := range events {
		_, err := tx.ExecContext(ctx, query,
			event.Seq,
			event.ID,
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

func (s *PostgresStore) LoadEvents(ctx context.Context) ([]*models.Event, error) {
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

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
